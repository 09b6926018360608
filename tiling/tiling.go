// rphmm: a read-partitioning hidden Markov model engine for phasing
// sequencing reads into haplotypes.
// Copyright (c) 2026 ExaScience.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://www.gnu.org/licenses/>.

// Package tiling arranges read-partitioning HMMs into non-overlapping
// tiling paths and merges overlapping paths together, driving the
// construction of a final set of HMMs that tile a set of reads.
package tiling

import (
	"golang.org/x/exp/slices"

	"github.com/exascience/rphmm/rphmm"
)

// TilingPath is a sequence of HMMs sorted by (ReferenceName, RefStart,
// RefLength) that do not overlap on the reference.
type TilingPath []*rphmm.HMM

// CompareHMM orders two HMMs by (ReferenceName, RefStart, RefLength).
// Grounded on original_source/impl/stRPHmm.c:stRPHmm_cmpFn.
func CompareHMM(a, b *rphmm.HMM) int {
	if a.ReferenceName != b.ReferenceName {
		if a.ReferenceName < b.ReferenceName {
			return -1
		}
		return 1
	}
	if a.RefStart != b.RefStart {
		return a.RefStart - b.RefStart
	}
	return a.RefLength - b.RefLength
}

// nextNonoverlapping scans sorted starting at index from for the first
// unused HMM that either lies on a different reference than cur or starts
// at or after cur's end, returning its index and value, or (-1, nil) if
// none remains. Grounded on
// original_source/impl/stRPHmm.c:getNextClosestNonoverlappingHmm.
func nextNonoverlapping(cur *rphmm.HMM, sorted []*rphmm.HMM, from int, used []bool) (int, *rphmm.HMM) {
	for i := from; i < len(sorted); i++ {
		if used[i] {
			continue
		}
		candidate := sorted[i]
		if candidate.ReferenceName != cur.ReferenceName {
			return i, candidate
		}
		if cur.RefEnd() <= candidate.RefStart {
			return i, candidate
		}
	}
	return -1, nil
}

// TilingPaths partitions hmms into maximal tiling paths: each path is a
// maximal sequence of non-overlapping HMMs built greedily in reference
// order. Grounded on
// original_source/impl/stRPHmm.c:getTilingPaths.
func TilingPaths(hmms []*rphmm.HMM) []TilingPath {
	sorted := append([]*rphmm.HMM(nil), hmms...)
	slices.SortFunc(sorted, CompareHMM)
	used := make([]bool, len(sorted))

	var paths []TilingPath
	for {
		start := -1
		for i, u := range used {
			if !u {
				start = i
				break
			}
		}
		if start == -1 {
			break
		}

		path := TilingPath{sorted[start]}
		used[start] = true
		curIdx := start
		for {
			nextIdx, next := nextNonoverlapping(sorted[curIdx], sorted, curIdx+1, used)
			if next == nil {
				break
			}
			path = append(path, next)
			used[nextIdx] = true
			curIdx = nextIdx
		}
		paths = append(paths, path)
	}
	return paths
}

// fuse joins every HMM in path into a single HMM, left to right.
func fuse(path TilingPath) (*rphmm.HMM, error) {
	hmm := path[0]
	for _, next := range path[1:] {
		var err error
		hmm, err = rphmm.Fuse(hmm, next)
		if err != nil {
			return nil, err
		}
	}
	return hmm, nil
}

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

package tiling

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/rphmm/rphmm"
)

// MergeTwoTilingPaths merges two non-overlapping, sorted tiling paths into
// one: HMMs in overlapping connected components are fused, aligned,
// cross-producted and pruned into a single replacement HMM; HMMs in a
// component of size one pass through unchanged. Grounded on
// original_source/impl/stRPHmm.c:mergeTwoTilingPaths.
func MergeTwoTilingPaths(path1, path2 TilingPath, params rphmm.Params) (TilingPath, error) {
	components := OverlapComponents(path1, path2)

	merged := make(TilingPath, 0, len(components))
	for _, component := range components {
		if len(component) == 1 {
			merged = append(merged, component[0])
			continue
		}

		subPaths := TilingPaths(component)
		if len(subPaths) != 2 {
			return nil, fmt.Errorf("%w: overlap component split into %d sub-paths, want 2", rphmm.ErrHmmMismatch, len(subPaths))
		}

		hmm1, err := fuse(subPaths[0])
		if err != nil {
			return nil, err
		}
		hmm2, err := fuse(subPaths[1])
		if err != nil {
			return nil, err
		}

		if err := rphmm.AlignColumns(hmm1, hmm2); err != nil {
			return nil, err
		}
		hmm, err := rphmm.CrossProduct(hmm1, hmm2)
		if err != nil {
			return nil, err
		}

		if err := rphmm.ForwardBackward(hmm); err != nil {
			return nil, err
		}
		rphmm.Prune(hmm, params)

		merged = append(merged, hmm)
	}

	sortTilingPath(merged)
	return merged, nil
}

// mergeTilingPathsGrainSize is the tiling-path count below which
// MergeTilingPaths recurses on its two halves sequentially instead of in
// parallel, avoiding goroutine overhead on small merges.
const mergeTilingPathsGrainSize = 4

// MergeTilingPaths merges a list of tiling paths into one, halving the
// list recursively in parallel until only pairs remain. Grounded on
// original_source/impl/stRPHmm.c:mergeTilingPaths; recursive-halving
// fan-out via github.com/exascience/pargo/parallel.Do is grounded on
// intervals.ParallelFlatten's identical fork-join pattern.
func MergeTilingPaths(tilingPaths []TilingPath, params rphmm.Params) (TilingPath, error) {
	switch len(tilingPaths) {
	case 0:
		return TilingPath{}, nil
	case 1:
		return tilingPaths[0], nil
	}

	var path1, path2 TilingPath
	var err1, err2 error

	if len(tilingPaths) > 2 && len(tilingPaths) >= mergeTilingPathsGrainSize {
		half := len(tilingPaths) / 2
		left, right := tilingPaths[:half], tilingPaths[half:]
		parallel.Do(
			func() { path1, err1 = MergeTilingPaths(left, params) },
			func() { path2, err2 = MergeTilingPaths(right, params) },
		)
	} else if len(tilingPaths) > 2 {
		half := len(tilingPaths) / 2
		path1, err1 = MergeTilingPaths(tilingPaths[:half], params)
		path2, err2 = MergeTilingPaths(tilingPaths[half:], params)
	} else {
		path1, path2 = tilingPaths[0], tilingPaths[1]
	}

	if err1 != nil {
		return nil, err1
	}
	if err2 != nil {
		return nil, err2
	}

	return MergeTwoTilingPaths(path1, path2, params)
}

func sortTilingPath(path TilingPath) {
	slices.SortFunc(path, CompareHMM)
}

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

	"github.com/exascience/rphmm/partition"
	"github.com/exascience/rphmm/profileseq"
	"github.com/exascience/rphmm/rphmm"
)

// tilingPathsFromReads builds one singleton HMM per read and organizes them
// into non-overlapping tiling paths. Grounded on
// original_source/impl/coordination.c:getTilingPaths2, which is
// reference-name aware (unlike stRPHmm.c's single-reference getRPHmms):
// CompareHMM sorts by ReferenceName first, so a path only extends across
// references once it runs out of same-reference candidates to extend with
// (matching getNextClosestNonoverlappingHmm), same as the reference
// implementation. OverlapComponents and Fuse still reject pairing HMMs from
// different references downstream, so a cross-reference path never gets
// merged into a single HMM; it only means one TilingPath's slice can hold
// HMMs from more than one reference.
func tilingPathsFromReads(seqs []*profileseq.ProfileSequence, params rphmm.Params) []TilingPath {
	hmms := make([]*rphmm.HMM, len(seqs))
	for i, seq := range seqs {
		hmms[i] = rphmm.NewFromProfileSeq(seq, params.LogSubstitutionMatrix)
	}
	return TilingPaths(hmms)
}

// FilterReadsByCoverageDepth splits seqs into a subset whose maximum
// per-reference tiling-path count does not exceed params.MaxCoverageDepth,
// and the reads discarded to bring it under that limit. Grounded on
// original_source/impl/coordination.c:filterReadsByCoverageDepth.
func FilterReadsByCoverageDepth(seqs []*profileseq.ProfileSequence, params rphmm.Params) (filtered, discarded []*profileseq.ProfileSequence) {
	tilingPaths := tilingPathsFromReads(seqs, params)

	for len(tilingPaths) > params.MaxCoverageDepth {
		last := tilingPaths[len(tilingPaths)-1]
		tilingPaths = tilingPaths[:len(tilingPaths)-1]
		for _, hmm := range last {
			discarded = append(discarded, hmm.ProfileSeqs[0])
		}
	}
	for _, path := range tilingPaths {
		for _, hmm := range path {
			filtered = append(filtered, hmm.ProfileSeqs[0])
		}
	}
	return filtered, discarded
}

// GetRPHmms builds the final set of read-partitioning HMMs covering seqs:
// non-overlapping, sorted by reference coordinate, with every group of
// overlapping reads merged into one HMM by repeated tiling-path merging.
// Grounded on original_source/impl/coordination.c:getRPHmms.
func GetRPHmms(seqs []*profileseq.ProfileSequence, params rphmm.Params) ([]*rphmm.HMM, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tilingPaths := tilingPathsFromReads(seqs, params)
	if len(tilingPaths) > partition.MaxDepth || len(tilingPaths) > params.MaxCoverageDepth {
		return nil, fmt.Errorf("%w: read depth of %d exceeds maximum of %d", rphmm.ErrCoverageExceeded, len(tilingPaths), params.MaxCoverageDepth)
	}

	finalPath, err := MergeTilingPaths(tilingPaths, params)
	if err != nil {
		return nil, err
	}
	for _, hmm := range finalPath {
		if err := rphmm.ForwardBackward(hmm); err != nil {
			return nil, err
		}
	}
	return []*rphmm.HMM(finalPath), nil
}

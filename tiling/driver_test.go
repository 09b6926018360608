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
	"testing"

	"github.com/exascience/rphmm/profileseq"
)

func TestGetRPHmmsMergesOverlappingReads(t *testing.T) {
	matrix := testLogSubMatrix()
	seqs := []*profileseq.ProfileSequence{
		testSeq("chr1", 0, 10),
		testSeq("chr1", 5, 10),
		testSeq("chr1", 20, 5),
	}
	params := testParams(matrix)

	hmms, err := GetRPHmms(seqs, params)
	if err != nil {
		t.Fatalf("GetRPHmms: %v", err)
	}
	if len(hmms) != 2 {
		t.Fatalf("got %d hmms, want 2 (one merged pair, one singleton)", len(hmms))
	}
	for i := 1; i < len(hmms); i++ {
		if hmms[i-1].RefStart >= hmms[i].RefStart {
			t.Errorf("hmms not sorted at index %d", i)
		}
	}
}

func TestGetRPHmmsAcrossReferences(t *testing.T) {
	matrix := testLogSubMatrix()
	seqs := []*profileseq.ProfileSequence{
		testSeq("chr1", 0, 10),
		testSeq("chr2", 0, 10),
		testSeq("chr2", 5, 10),
	}
	params := testParams(matrix)

	hmms, err := GetRPHmms(seqs, params)
	if err != nil {
		t.Fatalf("GetRPHmms: %v", err)
	}
	if len(hmms) != 2 {
		t.Fatalf("got %d hmms, want 2 (chr1 singleton, chr2 merged pair)", len(hmms))
	}
	names := map[string]bool{}
	for _, hmm := range hmms {
		names[hmm.ReferenceName] = true
	}
	if !names["chr1"] || !names["chr2"] {
		t.Errorf("hmms missing a reference name, got %v", names)
	}
}

func TestFilterReadsByCoverageDepth(t *testing.T) {
	matrix := testLogSubMatrix()
	seqs := []*profileseq.ProfileSequence{
		testSeq("chr1", 0, 10),
		testSeq("chr1", 0, 10),
		testSeq("chr1", 0, 10),
	}
	params := testParams(matrix)
	params.MaxCoverageDepth = 2

	filtered, discarded := FilterReadsByCoverageDepth(seqs, params)
	if len(filtered)+len(discarded) != len(seqs) {
		t.Fatalf("filtered(%d)+discarded(%d) != total(%d)", len(filtered), len(discarded), len(seqs))
	}
	if len(filtered) != 2 {
		t.Errorf("got %d filtered reads, want 2", len(filtered))
	}
	if len(discarded) != 1 {
		t.Errorf("got %d discarded reads, want 1", len(discarded))
	}
}

func TestFilterReadsByCoverageDepthUnderLimit(t *testing.T) {
	matrix := testLogSubMatrix()
	seqs := []*profileseq.ProfileSequence{
		testSeq("chr1", 0, 10),
		testSeq("chr1", 20, 10),
	}
	params := testParams(matrix)

	filtered, discarded := FilterReadsByCoverageDepth(seqs, params)
	if len(filtered) != 2 || len(discarded) != 0 {
		t.Errorf("filtered=%d discarded=%d, want 2/0", len(filtered), len(discarded))
	}
}

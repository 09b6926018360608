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

package profileseq

import "testing"

func TestNewEmpty(t *testing.T) {
	p := NewEmpty("chr1", 100, 10)
	if len(p.Probs) != 40 {
		t.Fatalf("len(Probs) = %d, want 40", len(p.Probs))
	}
	if p.ReferenceEnd() != 110 {
		t.Errorf("ReferenceEnd() = %d, want 110", p.ReferenceEnd())
	}
}

func TestProbRoundTrip(t *testing.T) {
	p := NewEmpty("chr1", 0, 3)
	p.SetProb(1, BaseC, 1.0)
	if got := p.Prob(1, BaseC); got < 0.99 {
		t.Errorf("Prob(1,C) = %v, want ~1.0", got)
	}
	if got := p.Prob(1, BaseA); got != 0 {
		t.Errorf("Prob(1,A) = %v, want 0", got)
	}
}

func TestConsensusString(t *testing.T) {
	p := NewEmpty("chr1", 0, 2)
	p.SetProb(0, BaseG, 1.0)
	p.SetProb(1, BaseT, 0.9)
	if got := p.ConsensusString(); got != "GT" {
		t.Errorf("ConsensusString() = %q, want GT", got)
	}
}

func TestConsensusStringTieBreak(t *testing.T) {
	p := NewEmpty("chr1", 0, 1) // all zero probs, ties at 0 -> A
	if got := p.ConsensusString(); got != "A" {
		t.Errorf("ConsensusString() = %q, want A", got)
	}
}

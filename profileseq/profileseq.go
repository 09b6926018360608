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

// Package profileseq represents reads as per-position emission
// distributions over a 4-letter nucleotide alphabet, the input format the
// rphmm engine consumes.
package profileseq

import "fmt"

// AlphabetSize is the number of bases in the emission alphabet.
const AlphabetSize = 4

// Base indices into the emission alphabet.
const (
	BaseA = 0
	BaseC = 1
	BaseG = 2
	BaseT = 3
)

var baseLetters = [AlphabetSize]byte{'A', 'C', 'G', 'T'}

// ProfileSequence is one read's emission table: a dense array of
// per-position, per-base 8-bit quantized probabilities anchored at
// (ReferenceName, ReferenceStart).
type ProfileSequence struct {
	ReferenceName string
	ReferenceStart int
	Length         int
	Probs          []uint8 // len == Length*AlphabetSize
}

// NewEmpty creates a zero-initialized profile sequence of the given length.
func NewEmpty(referenceName string, referenceStart, length int) *ProfileSequence {
	if length <= 0 {
		panic("profileseq: length must be positive")
	}
	return &ProfileSequence{
		ReferenceName:  referenceName,
		ReferenceStart: referenceStart,
		Length:         length,
		Probs:          make([]uint8, length*AlphabetSize),
	}
}

// ReferenceEnd returns the exclusive end of the reference interval this
// sequence spans.
func (p *ProfileSequence) ReferenceEnd() int {
	return p.ReferenceStart + p.Length
}

// Prob decodes the quantized probability of base at position pos, where
// pos is relative to ReferenceStart.
func (p *ProfileSequence) Prob(pos, base int) float64 {
	return float64(p.Probs[pos*AlphabetSize+base]) / 255.0
}

// SetProb quantizes and stores prob (in [0,1]) as the emission probability
// of base at position pos.
func (p *ProfileSequence) SetProb(pos, base int, prob float64) {
	if prob < 0 {
		prob = 0
	} else if prob > 1 {
		prob = 1
	}
	p.Probs[pos*AlphabetSize+base] = uint8(prob*255.0 + 0.5)
}

// ConsensusString returns, for each position, the letter of the most
// probable base, breaking ties toward A<C<G<T. Grounded on the reference
// implementation's stProfileSeq_print debug dump.
func (p *ProfileSequence) ConsensusString() string {
	out := make([]byte, p.Length)
	for pos := 0; pos < p.Length; pos++ {
		best := 0
		bestProb := p.Probs[pos*AlphabetSize]
		for base := 1; base < AlphabetSize; base++ {
			if v := p.Probs[pos*AlphabetSize+base]; v > bestProb {
				bestProb = v
				best = base
			}
		}
		out[pos] = baseLetters[best]
	}
	return string(out)
}

// String implements fmt.Stringer for debug output.
func (p *ProfileSequence) String() string {
	return fmt.Sprintf("%s:%d-%d (%d bp)", p.ReferenceName, p.ReferenceStart, p.ReferenceEnd(), p.Length)
}

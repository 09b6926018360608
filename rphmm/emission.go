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

package rphmm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/pargo/parallel"

	"github.com/exascience/rphmm/partition"
	"github.com/exascience/rphmm/profileseq"
)

const bitsPerByte = 8

// columnBitCounts holds, for every position in a column, an
// AlphabetSize x 8 table of 64-bit words: bit i of
// columnBitCounts[pos][base][bit] is set iff read i has bit `bit` set in
// its quantized emission byte for `base` at `pos`.
//
// The reference source computes this reduction with &=, which always
// yields zero; the correct reduction is |=, since each bit of the vector
// independently records one read's contribution.
type columnBitCounts [][profileseq.AlphabetSize][bitsPerByte]uint64

// computeBitCounts precomputes the bit-count vectors for every position in
// c, parallelized across positions the way
// filters/pairhmm.go:computeReadLikelihoods parallelizes its own
// per-position fill with pargo.
func computeBitCounts(c *Column) columnBitCounts {
	counts := make(columnBitCounts, c.Length)
	parallel.Range(0, c.Length, 0, func(low, high int) {
		for pos := low; pos < high; pos++ {
			var v [profileseq.AlphabetSize][bitsPerByte]uint64
			for i := 0; i < c.Depth; i++ {
				base := pos * profileseq.AlphabetSize
				for k := 0; k < profileseq.AlphabetSize; k++ {
					byteVal := c.Seqs[i][base+k]
					for b := 0; b < bitsPerByte; b++ {
						if (byteVal>>uint(b))&1 != 0 {
							v[k][b] |= uint64(1) << uint(i)
						}
					}
				}
			}
			counts[pos] = v
		}
	})
	return counts
}

// expectedCount returns E(pos,k,P): the expected number of instances of
// base k at position pos among the reads assigned by partition p,
// clamped to [0, depth].
func expectedCount(counts [profileseq.AlphabetSize][bitsPerByte]uint64, depth int, p uint64, base int) float64 {
	if depth == 0 {
		return 0
	}
	var raw float64
	shift := uint64(1)
	for b := 0; b < bitsPerByte; b++ {
		n := counts[base][b] & p
		raw += float64(partition.PopCount(n)) * float64(shift)
		shift <<= 1
	}
	e := raw / (255.0 * float64(depth))
	if e < 0 {
		e = 0
	} else if e > float64(depth) {
		e = float64(depth)
	}
	return e
}

// positionLogProb returns L(c,pos,P): the log-probability of the
// characters observed at pos under partition p, summed over source
// characters via logsumexp.
func positionLogProb(c *Column, pos int, p uint64, counts columnBitCounts, logSubMatrix []float64) float64 {
	if c.Depth == 0 {
		return 0
	}
	var expected [profileseq.AlphabetSize]float64
	for k := 0; k < profileseq.AlphabetSize; k++ {
		expected[k] = expectedCount(counts[pos], c.Depth, p, k)
	}

	var terms [profileseq.AlphabetSize]float64
	for src := 0; src < profileseq.AlphabetSize; src++ {
		var sum float64
		row := src * profileseq.AlphabetSize
		for k := 0; k < profileseq.AlphabetSize; k++ {
			sum += logSubMatrix[row+k] * expected[k]
		}
		terms[src] = sum
	}
	return floats.LogSumExp(terms[:])
}

// partitionLogProb returns the log-probability of every position in
// column c under partition p.
func partitionLogProb(c *Column, p uint64, counts columnBitCounts, logSubMatrix []float64) float64 {
	if c.Depth == 0 || c.Length == 0 {
		return 0
	}
	var total float64
	for pos := 0; pos < c.Length; pos++ {
		total += positionLogProb(c, pos, p, counts, logSubMatrix)
	}
	return total
}

// emissionLogProb returns emit(c, cell): the log-probability of column c
// under cell's partition, plus the log-probability of c under the
// complementary partition (haplotype 2).
func emissionLogProb(c *Column, cell *Cell, counts columnBitCounts, logSubMatrix []float64) float64 {
	complement := partition.Complement(cell.Partition, uint(c.Depth))
	return partitionLogProb(c, cell.Partition, counts, logSubMatrix) +
		partitionLogProb(c, complement, counts, logSubMatrix)
}

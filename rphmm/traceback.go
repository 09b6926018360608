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
	"github.com/exascience/rphmm/partition"
	"github.com/exascience/rphmm/profileseq"
)

// maxForwardCell returns the cell in c with the highest ForwardLogProb,
// and that probability.
func maxForwardCell(c *Column) (*Cell, float64) {
	var best *Cell
	bestScore := logZero
	for cell := c.Head; cell != nil; cell = cell.Next {
		if best == nil || cell.ForwardLogProb > bestScore {
			best = cell
			bestScore = cell.ForwardLogProb
		}
	}
	return best, bestScore
}

// ForwardTraceBack returns the maximum-forward state path through hmm, one
// Cell per Column from FirstColumn to LastColumn. It starts at the
// highest-forward cell of LastColumn and walks backward: at each step it
// consults the intervening merge column to find the merge cell the chosen
// cell feeds from, then picks the highest-forward cell in the preceding
// column whose own next-merge-cell link equals that same merge cell. If no
// such merge cell or no such cell exists the chain has been pruned too
// aggressively to support a consistent path, and ErrTracebackInfeasible is
// returned. Forward and Backward must already have been run. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_forwardTraceBack.
func ForwardTraceBack(hmm *HMM) ([]*Cell, error) {
	if hmm.LastColumn == nil {
		return nil, ErrTracebackInfeasible
	}

	column := hmm.LastColumn
	tail, score := maxForwardCell(column)
	if tail == nil || score == logZero {
		return nil, ErrTracebackInfeasible
	}

	path := make([]*Cell, 0, hmm.ColumnNumber)
	path = append(path, tail)

	for column.Prev != nil {
		mergeColumn := column.Prev
		m := mergeColumn.PreviousMergeCellOf(tail)
		if m == nil {
			return nil, ErrTracebackInfeasible
		}

		column = mergeColumn.Prev

		var next *Cell
		nextScore := logZero
		for cell := column.Head; cell != nil; cell = cell.Next {
			if mergeColumn.NextMergeCellOf(cell) != m {
				continue
			}
			if next == nil || cell.ForwardLogProb > nextScore {
				next = cell
				nextScore = cell.ForwardLogProb
			}
		}
		if next == nil {
			return nil, ErrTracebackInfeasible
		}

		tail = next
		path = append(path, tail)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// PartitionSequencesByHaplotype splits hmm's reads into the two haplotype
// sets implied by path (as returned by ForwardTraceBack): a read belongs to
// haplotype 1 wherever a column it spans assigns it bit 1, haplotype 2
// otherwise. A read that never appears in any column of path is left out of
// both sets.
func PartitionSequencesByHaplotype(hmm *HMM, path []*Cell) (haplotype1, haplotype2 map[*profileseq.ProfileSequence]struct{}) {
	haplotype1 = make(map[*profileseq.ProfileSequence]struct{})
	haplotype2 = make(map[*profileseq.ProfileSequence]struct{})

	column := hmm.FirstColumn
	for _, cell := range path {
		if column == nil {
			break
		}
		for i, seq := range column.SeqHeaders {
			if partition.InHaplotype1(cell.Partition, uint(i)) {
				haplotype1[seq] = struct{}{}
			} else {
				haplotype2[seq] = struct{}{}
			}
		}
		column = NextColumn(column)
	}
	return haplotype1, haplotype2
}

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

import "math"

// logSumForward returns logsumexp of ForwardLogProb over every cell in c.
func logSumForward(c *Column) float64 {
	total := logZero
	for cell := c.Head; cell != nil; cell = cell.Next {
		total = logAdd(total, cell.ForwardLogProb)
	}
	return total
}

// logSumBackward returns logsumexp of (cell.BackwardLogProb + emit(c,cell))
// over every cell in c: the column's own contribution to the total
// likelihood as seen looking forward from c.
func logSumBackward(c *Column, counts columnBitCounts, logSubMatrix []float64) float64 {
	total := logZero
	for cell := c.Head; cell != nil; cell = cell.Next {
		total = logAdd(total, cell.BackwardLogProb+emissionLogProb(c, cell, counts, logSubMatrix))
	}
	return total
}

// Forward runs the forward algorithm over hmm's column chain, filling in
// ForwardLogProb on every Cell, MergeCell and Column, and hmm.ForwardLogProb
// with the total log-likelihood. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_forward.
func Forward(hmm *HMM) {
	if hmm.FirstColumn == nil {
		hmm.ForwardLogProb = logZero
		return
	}

	column := hmm.FirstColumn
	counts := computeBitCounts(column)
	for cell := column.Head; cell != nil; cell = cell.Next {
		cell.ForwardLogProb = emissionLogProb(column, cell, counts, hmm.LogSubMatrix)
	}
	column.ForwardLogProb = logSumForward(column)

	for mergeColumn := column.Next; mergeColumn != nil; mergeColumn = column.Next {
		nextColumn := mergeColumn.Next

		for _, mCell := range mergeColumn.CellsFrom {
			mCell.ForwardLogProb = logZero
		}
		for cell := column.Head; cell != nil; cell = cell.Next {
			mCell := mergeColumn.NextMergeCellOf(cell)
			if mCell == nil {
				continue
			}
			mCell.ForwardLogProb = logAdd(mCell.ForwardLogProb, cell.ForwardLogProb)
		}

		nextCounts := computeBitCounts(nextColumn)
		for cell := nextColumn.Head; cell != nil; cell = cell.Next {
			incoming := logZero
			if mCell := mergeColumn.PreviousMergeCellOf(cell); mCell != nil {
				incoming = mCell.ForwardLogProb
			}
			cell.ForwardLogProb = incoming + emissionLogProb(nextColumn, cell, nextCounts, hmm.LogSubMatrix)
		}
		nextColumn.ForwardLogProb = logSumForward(nextColumn)

		column = nextColumn
	}

	hmm.ForwardLogProb = column.ForwardLogProb
}

// Backward runs the backward algorithm over hmm's column chain, filling in
// BackwardLogProb on every Cell, MergeCell and Column, and
// hmm.BackwardLogProb with the total log-likelihood (which should equal
// hmm.ForwardLogProb up to floating-point error once both have been run).
//
// The reference source accumulates each merge column's backward sum from
// the following column's forward total rather than its backward total;
// here the merge step always reads the following column's own
// BackwardLogProb. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_backward.
func Backward(hmm *HMM) {
	if hmm.LastColumn == nil {
		hmm.BackwardLogProb = logZero
		return
	}

	column := hmm.LastColumn
	lastCounts := computeBitCounts(column)
	for cell := column.Head; cell != nil; cell = cell.Next {
		cell.BackwardLogProb = 0
	}
	column.BackwardLogProb = logSumBackward(column, lastCounts, hmm.LogSubMatrix)

	for mergeColumn := column.Prev; mergeColumn != nil; mergeColumn = column.Prev {
		prevColumn := mergeColumn.Prev

		for _, mCell := range mergeColumn.CellsTo {
			mCell.BackwardLogProb = logZero
		}
		nextCounts := computeBitCounts(column)
		for cell := column.Head; cell != nil; cell = cell.Next {
			mCell := mergeColumn.PreviousMergeCellOf(cell)
			if mCell == nil {
				continue
			}
			mCell.BackwardLogProb = logAdd(mCell.BackwardLogProb, cell.BackwardLogProb+emissionLogProb(column, cell, nextCounts, hmm.LogSubMatrix))
		}

		for cell := prevColumn.Head; cell != nil; cell = cell.Next {
			incoming := logZero
			if mCell := mergeColumn.NextMergeCellOf(cell); mCell != nil {
				incoming = mCell.BackwardLogProb
			}
			cell.BackwardLogProb = incoming
		}
		prevCounts := computeBitCounts(prevColumn)
		prevColumn.BackwardLogProb = logSumBackward(prevColumn, prevCounts, hmm.LogSubMatrix)

		column = prevColumn
	}

	hmm.BackwardLogProb = column.BackwardLogProb
}

// ForwardBackward runs Forward followed by Backward and reports a mismatch
// between their resulting totals as an error rather than panicking, since a
// caller may legitimately run it on a malformed or partially-built HMM.
func ForwardBackward(hmm *HMM) error {
	Forward(hmm)
	Backward(hmm)
	if hmm.FirstColumn == nil {
		return nil
	}
	diff := hmm.ForwardLogProb - hmm.BackwardLogProb
	if diff < 0 {
		diff = -diff
	}
	const tolerance = 1e-6
	if diff > tolerance*(1+absFloat(hmm.ForwardLogProb)) {
		return ErrTracebackInfeasible
	}
	return nil
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PosteriorProb returns the posterior probability that cell is the true
// state of its column, clamped to [0,1].
func PosteriorProb(hmm *HMM, cell *Cell) float64 {
	return clampUnitInterval(math.Exp(cell.ForwardLogProb + cell.BackwardLogProb - hmm.ForwardLogProb))
}

// MergePosteriorProb returns the posterior probability that mCell is the
// true state of its merge column, clamped to [0,1].
func MergePosteriorProb(hmm *HMM, mCell *MergeCell) float64 {
	return clampUnitInterval(math.Exp(mCell.ForwardLogProb + mCell.BackwardLogProb - hmm.ForwardLogProb))
}

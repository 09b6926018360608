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

// Prune removes low-posterior cells and merge cells from hmm's column
// chain, keeping at least one cell per column and merge column regardless
// of its posterior probability. Forward and Backward must already have
// been run; the caller should re-run ForwardBackward afterwards if it
// needs consistent totals, since pruning changes the normalizing constant.
//
// The reference source rebuilds the singly-linked cell list in place with
// a pointer-to-pointer walk that mishandles deleting adjacent low-scoring
// cells; here each column's list is rebuilt from a filtered slice instead.
// Grounded on original_source/impl/stRPHmm.c:stRPHmm_prune.
func Prune(hmm *HMM, params Params) {
	for column := hmm.FirstColumn; column != nil; column = NextColumn(column) {
		pruneColumn(hmm, column, params)
	}
	for column := hmm.FirstColumn; column != nil; {
		mergeColumn := column.Next
		if mergeColumn == nil {
			break
		}
		pruneMergeColumn(hmm, mergeColumn, params)
		column = mergeColumn.Next
	}
}

func pruneColumn(hmm *HMM, column *Column, params Params) {
	if column.Depth < params.MinColumnDepthToFilter {
		return
	}

	kept := make([]*Cell, 0)
	for cell := column.Head; cell != nil; cell = cell.Next {
		if PosteriorProb(hmm, cell) >= params.PosteriorProbabilityThreshold {
			kept = append(kept, cell)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, bestSurvivor(column))
	}
	relinkCells(column, kept)
}

// bestSurvivor returns the single highest-posterior cell in a column all of
// whose cells fell below the pruning threshold, so a column is never left
// with no state at all.
func bestSurvivor(column *Column) *Cell {
	var best *Cell
	bestScore := math.Inf(-1)
	for cell := column.Head; cell != nil; cell = cell.Next {
		score := cell.ForwardLogProb + cell.BackwardLogProb
		if best == nil || score > bestScore {
			best = cell
			bestScore = score
		}
	}
	return best
}

// relinkCells replaces column's cell list with kept, preserving order.
// column.Depth is the number of reads spanning the column, not the number
// of candidate cells, and is left untouched.
func relinkCells(column *Column, kept []*Cell) {
	column.Head = kept[0]
	for i := 0; i < len(kept)-1; i++ {
		kept[i].Next = kept[i+1]
	}
	kept[len(kept)-1].Next = nil
}

func pruneMergeColumn(hmm *HMM, mergeColumn *MergeColumn, params Params) {
	if mergeColumn.Depth() < params.MinColumnDepthToFilter {
		return
	}

	var toRemove []*MergeCell
	var survivor *MergeCell
	survivorScore := math.Inf(-1)
	for _, mCell := range mergeColumn.CellsFrom {
		score := mCell.ForwardLogProb + mCell.BackwardLogProb
		if survivor == nil || score > survivorScore {
			survivor = mCell
			survivorScore = score
		}
		if MergePosteriorProb(hmm, mCell) < params.PosteriorProbabilityThreshold {
			toRemove = append(toRemove, mCell)
		}
	}
	if len(toRemove) == mergeColumn.Depth() {
		toRemove = toRemove[:0]
		for _, mCell := range mergeColumn.CellsFrom {
			if mCell != survivor {
				toRemove = append(toRemove, mCell)
			}
		}
	}
	for _, mCell := range toRemove {
		mergeColumn.RemoveMergeCell(mCell)
	}
}

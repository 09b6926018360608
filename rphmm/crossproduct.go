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
	"fmt"

	"github.com/google/uuid"

	"github.com/exascience/rphmm/partition"
	"github.com/exascience/rphmm/profileseq"
)

// CrossProduct builds the Cartesian-product HMM of two previously-aligned
// HMMs (see AlignColumns): each aligned column pair becomes one column
// whose depth is the sum of the two, and whose cells are every pair of
// input cells merged via partition.Merge; merge columns are combined the
// same way. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_createCrossProductOfTwoAlignedHmm.
func CrossProduct(hmm1, hmm2 *HMM) (*HMM, error) {
	if hmm1.ReferenceName != hmm2.ReferenceName || hmm1.RefStart != hmm2.RefStart || hmm1.ColumnNumber != hmm2.ColumnNumber {
		return nil, fmt.Errorf("%w: cross product requires previously-aligned hmms", ErrHmmMismatch)
	}
	if !sameMatrix(hmm1.LogSubMatrix, hmm2.LogSubMatrix) {
		return nil, fmt.Errorf("%w: cross product requires identical substitution matrices", ErrHmmMismatch)
	}

	hmm := &HMM{
		ID:            uuid.New(),
		ReferenceName: hmm1.ReferenceName,
		RefStart:      hmm1.RefStart,
		RefLength:     hmm1.RefLength,
		ProfileSeqs:   append(append([]*profileseq.ProfileSequence(nil), hmm1.ProfileSeqs...), hmm2.ProfileSeqs...),
		LogSubMatrix:  hmm1.LogSubMatrix,
		ColumnNumber:  hmm1.ColumnNumber,
	}

	column1, column2 := hmm1.FirstColumn, hmm2.FirstColumn
	var mergeColumn *MergeColumn

	for {
		if column1.RefStart != column2.RefStart || column1.Length != column2.Length {
			return nil, fmt.Errorf("%w: cross product requires matching column boundaries", ErrHmmMismatch)
		}

		newDepth := column1.Depth + column2.Depth
		if newDepth > hmm.MaxDepth {
			hmm.MaxDepth = newDepth
		}

		seqHeaders := make([]*profileseq.ProfileSequence, 0, newDepth)
		seqHeaders = append(seqHeaders, column1.SeqHeaders...)
		seqHeaders = append(seqHeaders, column2.SeqHeaders...)
		seqs := make([][]uint8, 0, newDepth)
		seqs = append(seqs, column1.Seqs...)
		seqs = append(seqs, column2.Seqs...)

		column := NewColumn(column1.RefStart, column1.Length, newDepth, seqHeaders, seqs)
		if mergeColumn != nil {
			mergeColumn.Next = column
			column.Prev = mergeColumn
		} else {
			hmm.FirstColumn = column
		}

		tail := &column.Head
		for cell1 := column1.Head; cell1 != nil; cell1 = cell1.Next {
			for cell2 := column2.Head; cell2 != nil; cell2 = cell2.Next {
				p := partition.Merge(cell1.Partition, cell2.Partition, uint(column1.Depth), uint(column2.Depth))
				*tail = &Cell{Partition: p}
				tail = &(*tail).Next
			}
		}

		mColumn1, mColumn2 := column1.Next, column2.Next
		if mColumn1 == nil {
			if mColumn2 != nil {
				return nil, fmt.Errorf("%w: cross product column chains diverged in length", ErrHmmMismatch)
			}
			hmm.LastColumn = column
			break
		}
		if mColumn2 == nil {
			return nil, fmt.Errorf("%w: cross product column chains diverged in length", ErrHmmMismatch)
		}

		fromMask := partition.Merge(mColumn1.MaskFrom, mColumn2.MaskFrom, uint(mColumn1.Prev.Depth), uint(mColumn2.Prev.Depth))
		toMask := partition.Merge(mColumn1.MaskTo, mColumn2.MaskTo, uint(mColumn1.Next.Depth), uint(mColumn2.Next.Depth))
		mergeColumn = NewMergeColumn(fromMask, toMask)
		mergeColumn.Prev = column
		column.Next = mergeColumn

		for _, mCell1 := range mColumn1.CellsFrom {
			for _, mCell2 := range mColumn2.CellsFrom {
				fromPartition := partition.Merge(mCell1.FromPartition, mCell2.FromPartition, uint(mColumn1.Prev.Depth), uint(mColumn2.Prev.Depth))
				toPartition := partition.Merge(mCell1.ToPartition, mCell2.ToPartition, uint(mColumn1.Next.Depth), uint(mColumn2.Next.Depth))
				mergeColumn.InsertMergeCell(fromPartition, toPartition)
			}
		}

		column1, column2 = mColumn1.Next, mColumn2.Next
	}

	return hmm, nil
}

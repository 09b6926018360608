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

import "fmt"

// prependEmptyColumn adds a depth-0 column of the given length to the
// front of hmm, covering [refStart, refStart+length).
func prependEmptyColumn(hmm *HMM, refStart, length int) {
	column := newEmptyColumn(refStart, length)
	mergeColumn := NewMergeColumn(0, 0)
	mergeColumn.InsertMergeCell(0, 0)

	hmm.FirstColumn.Prev = mergeColumn
	mergeColumn.Next = hmm.FirstColumn
	mergeColumn.Prev = column
	column.Next = mergeColumn
	hmm.FirstColumn = column

	hmm.RefLength += hmm.RefStart - refStart
	hmm.RefStart = refStart
	hmm.ColumnNumber++
}

// appendEmptyColumn adds a depth-0 column of the given length to the back
// of hmm, covering [refStart, refStart+length).
func appendEmptyColumn(hmm *HMM, refStart, length int) {
	column := newEmptyColumn(refStart, length)
	mergeColumn := NewMergeColumn(0, 0)
	mergeColumn.InsertMergeCell(0, 0)

	hmm.LastColumn.Next = mergeColumn
	mergeColumn.Prev = hmm.LastColumn
	mergeColumn.Next = column
	column.Prev = mergeColumn
	hmm.LastColumn = column

	hmm.RefLength = refStart + length - hmm.RefStart
	hmm.ColumnNumber++
}

// AlignColumns mutates a and b in place so that they span identical
// reference intervals with identical column boundaries: after it returns,
// a.ColumnNumber == b.ColumnNumber, and for each index i the i-th columns
// of a and b share (RefStart, Length). a and b must already overlap in
// reference coordinates. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_alignColumns.
func AlignColumns(a, b *HMM) error {
	if !OverlapOnReference(a, b) {
		return fmt.Errorf("%w: alignColumns requires overlapping hmms", ErrHmmMismatch)
	}

	if a.RefStart > b.RefStart {
		a, b = b, a
	}
	if a.RefStart < b.RefStart {
		prependEmptyColumn(b, a.RefStart, b.RefStart-a.RefStart)
	}

	if a.RefLength < b.RefLength {
		a, b = b, a
	}
	if a.RefLength > b.RefLength {
		appendEmptyColumn(b, b.LastColumn.RefStart+b.LastColumn.Length, a.RefLength-b.RefLength)
	}

	column1, column2 := a.FirstColumn, b.FirstColumn
	for {
		if column1.RefStart != column2.RefStart {
			panic("rphmm: alignColumns lost sync between column chains")
		}
		if column1.Length > column2.Length {
			Split(a, column1, column2.Length)
		} else if column1.Length < column2.Length {
			Split(b, column2, column1.Length)
		}

		if column1.Next == nil {
			if column2.Next != nil {
				panic("rphmm: alignColumns column chains diverged in length")
			}
			break
		}
		column1 = NextColumn(column1)
		column2 = NextColumn(column2)
	}

	if a.ColumnNumber != b.ColumnNumber {
		panic("rphmm: alignColumns postcondition violated")
	}
	return nil
}

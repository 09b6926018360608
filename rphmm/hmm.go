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

	"github.com/exascience/rphmm/profileseq"
)

// NewFromProfileSeq builds the singleton HMM for a single read: one column
// of depth 1 spanning the read's whole reference interval, with two cells
// for the two possible haplotype assignments of that one read. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_construct.
func NewFromProfileSeq(seq *profileseq.ProfileSequence, logSubMatrix []float64) *HMM {
	column := NewColumn(seq.ReferenceStart, seq.Length, 1,
		[]*profileseq.ProfileSequence{seq}, [][]uint8{seq.Probs})
	column.Head = &Cell{Partition: 0}
	column.Head.Next = &Cell{Partition: 1}

	hmm := &HMM{
		ID:            uuid.New(),
		ReferenceName: seq.ReferenceName,
		RefStart:      seq.ReferenceStart,
		RefLength:     seq.Length,
		ProfileSeqs:   []*profileseq.ProfileSequence{seq},
		LogSubMatrix:  logSubMatrix,
		FirstColumn:   column,
		LastColumn:    column,
		ColumnNumber:  1,
		MaxDepth:      1,
	}
	return hmm
}

// RefEnd returns the exclusive end of the reference interval hmm spans.
func (hmm *HMM) RefEnd() int {
	return hmm.RefStart + hmm.RefLength
}

func sameMatrix(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// OverlapOnReference reports whether two HMMs on the same reference
// overlap in reference coordinates.
func OverlapOnReference(a, b *HMM) bool {
	if a.ReferenceName != b.ReferenceName {
		return false
	}
	return maxInt(a.RefStart, b.RefStart) < minInt(a.RefEnd(), b.RefEnd())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Fuse joins leftHmm and rightHmm, which must be on the same reference
// sequence, non-overlapping, with leftHmm preceding rightHmm, into a
// single HMM. A depth-0 gap column is inserted if the two do not abut.
// Grounded on original_source/impl/stRPHmm.c:stRPHmm_fuse.
func Fuse(leftHmm, rightHmm *HMM) (*HMM, error) {
	if leftHmm.ReferenceName != rightHmm.ReferenceName {
		return nil, fmt.Errorf("%w: fuse requires the same reference name, got %q and %q", ErrHmmMismatch, leftHmm.ReferenceName, rightHmm.ReferenceName)
	}
	if OverlapOnReference(leftHmm, rightHmm) {
		return nil, fmt.Errorf("%w: fuse requires non-overlapping hmms", ErrHmmMismatch)
	}
	if leftHmm.RefStart >= rightHmm.RefStart {
		return nil, fmt.Errorf("%w: left hmm must precede right hmm for fuse", ErrHmmMismatch)
	}
	if !sameMatrix(leftHmm.LogSubMatrix, rightHmm.LogSubMatrix) {
		return nil, fmt.Errorf("%w: fuse requires identical substitution matrices", ErrHmmMismatch)
	}

	hmm := &HMM{
		ID:            uuid.New(),
		ReferenceName: leftHmm.ReferenceName,
		RefStart:      leftHmm.RefStart,
		RefLength:     rightHmm.RefStart + rightHmm.RefLength - leftHmm.RefStart,
		ProfileSeqs:   append(append([]*profileseq.ProfileSequence(nil), leftHmm.ProfileSeqs...), rightHmm.ProfileSeqs...),
		LogSubMatrix:  leftHmm.LogSubMatrix,
		ColumnNumber:  leftHmm.ColumnNumber + rightHmm.ColumnNumber,
		MaxDepth:      maxInt(leftHmm.MaxDepth, rightHmm.MaxDepth),
	}

	mergeColumn := NewMergeColumn(0, 0)
	mergeColumn.InsertMergeCell(0, 0)
	leftHmm.LastColumn.Next = mergeColumn
	mergeColumn.Prev = leftHmm.LastColumn

	gapLength := rightHmm.RefStart - (leftHmm.RefStart + leftHmm.RefLength)
	if gapLength > 0 {
		gap := newEmptyColumn(leftHmm.RefStart+leftHmm.RefLength, gapLength)
		mergeColumn.Next = gap
		gap.Prev = mergeColumn
		nextMerge := NewMergeColumn(0, 0)
		nextMerge.InsertMergeCell(0, 0)
		gap.Next = nextMerge
		nextMerge.Prev = gap
		mergeColumn = nextMerge
		hmm.ColumnNumber++
	}

	mergeColumn.Next = rightHmm.FirstColumn
	rightHmm.FirstColumn.Prev = mergeColumn

	hmm.FirstColumn = leftHmm.FirstColumn
	hmm.LastColumn = rightHmm.LastColumn

	return hmm, nil
}

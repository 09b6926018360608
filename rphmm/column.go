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

// NewColumn constructs a column over [refStart, refStart+length) with no
// cells yet; callers populate Head afterward.
func NewColumn(refStart, length, depth int, seqHeaders []*profileseq.ProfileSequence, seqs [][]uint8) *Column {
	return &Column{
		RefStart:   refStart,
		Length:     length,
		Depth:      depth,
		SeqHeaders: seqHeaders,
		Seqs:       seqs,
	}
}

// newEmptyColumn builds a depth-0 column covering [refStart,refStart+length)
// with a single empty-partition cell, used to pad HMMs to a common
// reference interval in AlignColumns and Fuse.
func newEmptyColumn(refStart, length int) *Column {
	c := NewColumn(refStart, length, 0, nil, nil)
	c.Head = &Cell{Partition: 0}
	return c
}

// AppendCell adds cell to the end of column c's linked list of candidate
// partitions, preserving insertion order (the list is otherwise
// unordered).
func (c *Column) AppendCell(cell *Cell) {
	if c.Head == nil {
		c.Head = cell
		return
	}
	tail := c.Head
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = cell
}

// CellCount returns the number of cells currently in the column.
func (c *Column) CellCount() int {
	n := 0
	for cell := c.Head; cell != nil; cell = cell.Next {
		n++
	}
	return n
}

// Split divides column c at reference offset k (0 < k < c.Length) into c
// (now [RefStart, RefStart+k)) and a new right column r covering
// [RefStart+k, RefStart+c.Length), joined by a new identity merge column.
// hmm.LastColumn is updated if c was the tail, and hmm.ColumnNumber is
// incremented. Grounded on
// original_source/impl/stRPHmm.c:stRPColumn_split.
func Split(hmm *HMM, c *Column, k int) *Column {
	if k <= 0 || k >= c.Length {
		panic("rphmm: split offset out of range")
	}

	seqHeaders := append([]*profileseq.ProfileSequence(nil), c.SeqHeaders...)
	seqs := make([][]uint8, c.Depth)
	for i := range seqs {
		seqs[i] = c.Seqs[i][k*profileseq.AlphabetSize:]
	}
	r := NewColumn(c.RefStart+k, c.Length-k, c.Depth, seqHeaders, seqs)

	mergeColumn := NewMergeColumn(partition.AcceptMask(uint(c.Depth)), partition.AcceptMask(uint(c.Depth)))

	var rTail **Cell = &r.Head
	for cell := c.Head; cell != nil; cell = cell.Next {
		*rTail = &Cell{Partition: cell.Partition}
		mergeColumn.InsertMergeCell(cell.Partition, cell.Partition)
		rTail = &(*rTail).Next
	}

	c.Length = k

	if c.Next == nil {
		hmm.LastColumn = r
	} else {
		c.Next.Prev = r
		r.Next = c.Next
	}
	c.Next = mergeColumn
	mergeColumn.Prev = c
	mergeColumn.Next = r
	r.Prev = mergeColumn

	hmm.ColumnNumber++
	return r
}

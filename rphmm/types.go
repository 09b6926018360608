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

// Package rphmm implements the read-partitioning hidden Markov model: a
// doubly-linked chain of columns and merge columns whose hidden states are
// bipartitions of the reads spanning them, plus forward/backward inference
// and Viterbi-style traceback over that chain.
package rphmm

import (
	"math"

	"github.com/google/uuid"

	"github.com/exascience/rphmm/profileseq"
)

var logZero = math.Inf(-1)

// Cell is one candidate hidden state within a Column: a bit-packed
// partition assigning each of the column's reads to haplotype 1 (bit set)
// or haplotype 2 (bit clear).
type Cell struct {
	Partition       uint64
	Next            *Cell // singly-linked list of cells within a column
	ForwardLogProb  float64
	BackwardLogProb float64
}

// Column is a reference subinterval [RefStart, RefStart+Length) over which
// the set of spanning reads is constant.
type Column struct {
	RefStart int
	Length   int
	Depth    int

	// SeqHeaders[i] is the read spanning this column at index i; Seqs[i] is
	// the slice of SeqHeaders[i].Probs starting at this column's offset
	// into that read.
	SeqHeaders []*profileseq.ProfileSequence
	Seqs       [][]uint8

	Head *Cell

	Prev *MergeColumn // boundary before this column, nil at chain head
	Next *MergeColumn // boundary after this column, nil at chain tail

	ForwardLogProb  float64
	BackwardLogProb float64
}

// MergeCell is one candidate state at a MergeColumn boundary: the
// projection of an outgoing partition through maskFrom paired with the
// projection of an incoming partition through maskTo.
type MergeCell struct {
	FromPartition   uint64
	ToPartition     uint64
	ForwardLogProb  float64
	BackwardLogProb float64
}

// MergeColumn sits between two adjacent columns L and R, mapping "outgoing
// partition of L projected by MaskFrom" to "incoming partition of R
// projected by MaskTo" via a set of MergeCells indexed both ways.
type MergeColumn struct {
	MaskFrom uint64
	MaskTo   uint64

	CellsFrom map[uint64]*MergeCell
	CellsTo   map[uint64]*MergeCell

	Prev *Column // L
	Next *Column // R
}

// NewMergeColumn constructs an empty merge column with the given masks.
func NewMergeColumn(maskFrom, maskTo uint64) *MergeColumn {
	return &MergeColumn{
		MaskFrom:  maskFrom,
		MaskTo:    maskTo,
		CellsFrom: make(map[uint64]*MergeCell),
		CellsTo:   make(map[uint64]*MergeCell),
	}
}

// InsertMergeCell installs a merge cell into both of the column's indexes.
func (m *MergeColumn) InsertMergeCell(fromPartition, toPartition uint64) *MergeCell {
	cell := &MergeCell{FromPartition: fromPartition, ToPartition: toPartition}
	m.CellsFrom[fromPartition] = cell
	m.CellsTo[toPartition] = cell
	return cell
}

// RemoveMergeCell removes a merge cell from both indexes.
func (m *MergeColumn) RemoveMergeCell(cell *MergeCell) {
	delete(m.CellsFrom, cell.FromPartition)
	delete(m.CellsTo, cell.ToPartition)
}

// Depth returns the number of merge cells currently in the column.
func (m *MergeColumn) Depth() int {
	return len(m.CellsFrom)
}

// NextMergeCellOf returns the merge cell that cell (a state of the column
// preceding m) feeds into, or nil if it has been pruned away.
func (m *MergeColumn) NextMergeCellOf(cell *Cell) *MergeCell {
	return m.CellsFrom[cell.Partition&m.MaskFrom]
}

// PreviousMergeCellOf returns the merge cell that cell (a state of the
// column following m) feeds from, or nil if it has been pruned away.
func (m *MergeColumn) PreviousMergeCellOf(cell *Cell) *MergeCell {
	return m.CellsTo[cell.Partition&m.MaskTo]
}

// HMM is a doubly-linked chain of columns and merge columns spanning one
// contiguous reference interval, together with the parameters used to
// score it.
type HMM struct {
	ID uuid.UUID

	ReferenceName string
	RefStart      int
	RefLength     int

	ProfileSeqs  []*profileseq.ProfileSequence
	LogSubMatrix []float64 // AlphabetSize*AlphabetSize row-major, natural log

	FirstColumn *Column
	LastColumn  *Column

	ColumnNumber int
	MaxDepth     int

	ForwardLogProb  float64
	BackwardLogProb float64
}

// NextColumn returns the column following c in the chain, or nil at the
// tail.
func NextColumn(c *Column) *Column {
	if c.Next == nil {
		return nil
	}
	return c.Next.Next
}

// PrevColumn returns the column preceding c in the chain, or nil at the
// head.
func PrevColumn(c *Column) *Column {
	if c.Prev == nil {
		return nil
	}
	return c.Prev.Prev
}

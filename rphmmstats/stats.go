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

// Package rphmmstats summarizes and sanity-checks read-partitioning HMMs
// built by package rphmm, for use in tests and debugging.
package rphmmstats

import (
	"fmt"
	"strings"

	"github.com/exascience/rphmm/rphmm"
)

// ColumnSummary describes one column of an HMM.
type ColumnSummary struct {
	RefStart        int
	Length          int
	Depth           int
	CellCount       int
	ForwardLogProb  float64
	BackwardLogProb float64
}

// MergeColumnSummary describes one merge column of an HMM.
type MergeColumnSummary struct {
	MaskFrom  uint64
	MaskTo    uint64
	CellCount int
}

// Summary describes the shape of an HMM's column chain, the way
// stRPHmm_print dumps it for debugging, but as a plain value instead of a
// stream written to an io.Writer.
type Summary struct {
	ReferenceName   string
	RefStart        int
	RefLength       int
	ColumnNumber    int
	MaxDepth        int
	ForwardLogProb  float64
	BackwardLogProb float64
	Columns         []ColumnSummary
	MergeColumns    []MergeColumnSummary
}

// Summarize walks hmm's column chain and returns a description of its
// current state. Grounded on
// original_source/impl/stRPHmm.c:stRPHmm_print/stRPColumn_print/
// stRPMergeColumn_print.
func Summarize(hmm *rphmm.HMM) Summary {
	s := Summary{
		ReferenceName:   hmm.ReferenceName,
		RefStart:        hmm.RefStart,
		RefLength:       hmm.RefLength,
		ColumnNumber:    hmm.ColumnNumber,
		MaxDepth:        hmm.MaxDepth,
		ForwardLogProb:  hmm.ForwardLogProb,
		BackwardLogProb: hmm.BackwardLogProb,
	}

	for column := hmm.FirstColumn; column != nil; column = rphmm.NextColumn(column) {
		s.Columns = append(s.Columns, ColumnSummary{
			RefStart:        column.RefStart,
			Length:          column.Length,
			Depth:           column.Depth,
			CellCount:       column.CellCount(),
			ForwardLogProb:  column.ForwardLogProb,
			BackwardLogProb: column.BackwardLogProb,
		})
		if column.Next != nil {
			s.MergeColumns = append(s.MergeColumns, MergeColumnSummary{
				MaskFrom:  column.Next.MaskFrom,
				MaskTo:    column.Next.MaskTo,
				CellCount: column.Next.Depth(),
			})
		}
	}
	return s
}

// binaryString renders the low n bits of p as a string of '0'/'1'
// characters, low bit first. Grounded on
// original_source/impl/stRPHmm.c:intToBinaryString.
func binaryString(p uint64, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if (p>>uint(i))&1 != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// String renders s the way stRPHmm_print formats an hmm header line plus
// one line per column and merge column.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HMM %s REF_START:%d REF_LENGTH:%d COLUMN_NUMBER:%d MAX_DEPTH:%d FORWARD_PROB:%g BACKWARD_PROB:%g\n",
		s.ReferenceName, s.RefStart, s.RefLength, s.ColumnNumber, s.MaxDepth, s.ForwardLogProb, s.BackwardLogProb)
	for i, c := range s.Columns {
		fmt.Fprintf(&b, "\tCOLUMN REF_START:%d LENGTH:%d DEPTH:%d CELLS:%d FORWARD_PROB:%g BACKWARD_PROB:%g\n",
			c.RefStart, c.Length, c.Depth, c.CellCount, c.ForwardLogProb, c.BackwardLogProb)
		if i < len(s.MergeColumns) {
			m := s.MergeColumns[i]
			fmt.Fprintf(&b, "\tMERGE_COLUMN MASK_FROM:%s MASK_TO:%s CELLS:%d\n",
				binaryString(m.MaskFrom, c.Depth), binaryString(m.MaskTo, c.Depth), m.CellCount)
		}
	}
	return b.String()
}

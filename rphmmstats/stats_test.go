package rphmmstats

import (
	"math"
	"strings"
	"testing"

	"github.com/exascience/rphmm/profileseq"
	"github.com/exascience/rphmm/rphmm"
)

func testLogSubMatrix() []float64 {
	match := math.Log(0.97)
	mismatch := math.Log(0.01)
	m := make([]float64, profileseq.AlphabetSize*profileseq.AlphabetSize)
	for i := 0; i < profileseq.AlphabetSize; i++ {
		for j := 0; j < profileseq.AlphabetSize; j++ {
			if i == j {
				m[i*profileseq.AlphabetSize+i] = match
			} else {
				m[i*profileseq.AlphabetSize+j] = mismatch
			}
		}
	}
	return m
}

func testTwoReadHMM(t *testing.T) *rphmm.HMM {
	t.Helper()
	matrix := testLogSubMatrix()
	seqA := profileseq.NewEmpty("chr1", 0, 8)
	seqB := profileseq.NewEmpty("chr1", 0, 8)
	for pos := 0; pos < 8; pos++ {
		seqA.SetProb(pos, profileseq.BaseA, 0.97)
		seqB.SetProb(pos, profileseq.BaseA, 0.97)
	}
	hmmA := rphmm.NewFromProfileSeq(seqA, matrix)
	hmmB := rphmm.NewFromProfileSeq(seqB, matrix)
	if err := rphmm.AlignColumns(hmmA, hmmB); err != nil {
		t.Fatalf("AlignColumns: %v", err)
	}
	hmm, err := rphmm.CrossProduct(hmmA, hmmB)
	if err != nil {
		t.Fatalf("CrossProduct: %v", err)
	}
	return hmm
}

func TestSummarizeReportsColumnShape(t *testing.T) {
	hmm := testTwoReadHMM(t)
	if err := rphmm.ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}

	summary := Summarize(hmm)
	if summary.ColumnNumber != hmm.ColumnNumber {
		t.Errorf("summary.ColumnNumber = %d, want %d", summary.ColumnNumber, hmm.ColumnNumber)
	}
	if len(summary.Columns) != 1 {
		t.Fatalf("got %d columns, want 1", len(summary.Columns))
	}
	if summary.Columns[0].Depth != 2 {
		t.Errorf("column depth = %d, want 2", summary.Columns[0].Depth)
	}
	if summary.Columns[0].CellCount != 4 {
		t.Errorf("cell count = %d, want 4 (2x2 cross product)", summary.Columns[0].CellCount)
	}
}

func TestSummaryStringIncludesHeaderAndColumns(t *testing.T) {
	hmm := testTwoReadHMM(t)
	if err := rphmm.ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}

	out := Summarize(hmm).String()
	if !strings.Contains(out, "HMM chr1") {
		t.Errorf("summary string missing header: %q", out)
	}
	if !strings.Contains(out, "COLUMN") {
		t.Errorf("summary string missing column line: %q", out)
	}
}

func TestBinaryString(t *testing.T) {
	if got := binaryString(0b101, 3); got != "101" {
		t.Errorf("binaryString(0b101,3) = %q, want %q", got, "101")
	}
	if got := binaryString(0, 4); got != "0000" {
		t.Errorf("binaryString(0,4) = %q, want %q", got, "0000")
	}
}

package rphmm

import (
	"math"
	"testing"

	"github.com/exascience/rphmm/profileseq"
)

// identityLogSubMatrix returns a substitution matrix that scores a
// perfect match at log(0.97) and any mismatch at log(0.01), a stand-in
// for a real base-quality-derived matrix.
func identityLogSubMatrix() []float64 {
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

func seqFromString(name string, refStart int, s string) *profileseq.ProfileSequence {
	seq := profileseq.NewEmpty(name, refStart, len(s))
	for pos, ch := range s {
		base := 0
		switch ch {
		case 'A':
			base = profileseq.BaseA
		case 'C':
			base = profileseq.BaseC
		case 'G':
			base = profileseq.BaseG
		case 'T':
			base = profileseq.BaseT
		}
		seq.SetProb(pos, base, 0.97)
	}
	return seq
}

func twoReadHMM(t *testing.T, a, b string) *HMM {
	t.Helper()
	matrix := identityLogSubMatrix()
	seqA := seqFromString("chr1", 0, a)
	seqB := seqFromString("chr1", 0, b)
	hmmA := NewFromProfileSeq(seqA, matrix)
	hmmB := NewFromProfileSeq(seqB, matrix)
	if err := AlignColumns(hmmA, hmmB); err != nil {
		t.Fatalf("AlignColumns: %v", err)
	}
	hmm, err := CrossProduct(hmmA, hmmB)
	if err != nil {
		t.Fatalf("CrossProduct: %v", err)
	}
	return hmm
}

func TestForwardBackwardTotalsAgree(t *testing.T) {
	hmm := twoReadHMM(t, "ACGTACGT", "ACGTACGA")
	if err := ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}
	if math.IsInf(hmm.ForwardLogProb, -1) {
		t.Fatal("forward log prob is -Inf")
	}
}

func TestPosteriorProbSumsToOnePerColumn(t *testing.T) {
	hmm := twoReadHMM(t, "ACGTACGT", "ACGTACGA")
	if err := ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}

	for column := hmm.FirstColumn; column != nil; column = NextColumn(column) {
		total := 0.0
		for cell := column.Head; cell != nil; cell = cell.Next {
			total += PosteriorProb(hmm, cell)
		}
		if math.Abs(total-1) > 1e-6 {
			t.Errorf("column at %d: posterior probabilities sum to %v, want 1", column.RefStart, total)
		}
	}
}

func TestForwardOnEmptyHMM(t *testing.T) {
	hmm := &HMM{}
	Forward(hmm)
	if hmm.ForwardLogProb != logZero {
		t.Errorf("ForwardLogProb = %v, want -Inf", hmm.ForwardLogProb)
	}
	Backward(hmm)
	if hmm.BackwardLogProb != logZero {
		t.Errorf("BackwardLogProb = %v, want -Inf", hmm.BackwardLogProb)
	}
}

func TestLogAdd(t *testing.T) {
	if got := logAdd(logZero, logZero); got != logZero {
		t.Errorf("logAdd(-Inf,-Inf) = %v, want -Inf", got)
	}
	if got := logAdd(logZero, 0); got != 0 {
		t.Errorf("logAdd(-Inf,0) = %v, want 0", got)
	}
	got := logAdd(math.Log(0.5), math.Log(0.5))
	if want := math.Log(1.0); math.Abs(got-want) > 1e-9 {
		t.Errorf("logAdd(log .5, log .5) = %v, want %v", got, want)
	}
}

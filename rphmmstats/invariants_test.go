package rphmmstats

import (
	"testing"

	"github.com/exascience/rphmm/rphmm"
)

func TestCheckInvariantsOnWellFormedHMM(t *testing.T) {
	hmm := testTwoReadHMM(t)
	if errs := CheckInvariants(hmm, false); len(errs) != 0 {
		t.Errorf("unexpected invariant violations before forward/backward: %v", errs)
	}

	if err := rphmm.ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}
	if errs := CheckInvariants(hmm, true); len(errs) != 0 {
		t.Errorf("unexpected invariant violations after forward/backward: %v", errs)
	}
}

func TestCheckInvariantsCatchesColumnNumberMismatch(t *testing.T) {
	hmm := testTwoReadHMM(t)
	if err := rphmm.ForwardBackward(hmm); err != nil {
		t.Fatalf("ForwardBackward: %v", err)
	}
	hmm.ColumnNumber = 99

	errs := CheckInvariants(hmm, true)
	if len(errs) == 0 {
		t.Fatal("expected a ColumnNumber mismatch to be reported")
	}
}

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

package partition

import "testing"

func TestMerge(t *testing.T) {
	if got := Merge(0b1, 0b10, 1, 2); got != 0b110 {
		t.Errorf("Merge(1,2,1,2) = %b, want 110", got)
	}
	if got := Merge(0b101, 0b011, 3, 3); got != 0b101011 {
		t.Errorf("Merge(5,3,3,3) = %b, want 101011", got)
	}
}

func TestMask(t *testing.T) {
	if got := Mask(0b1101, 0b0110); got != 0b0100 {
		t.Errorf("Mask(1101,0110) = %b, want 0100", got)
	}
}

func TestInHaplotype1(t *testing.T) {
	p := uint64(0b1010)
	for i, want := range []bool{false, true, false, true} {
		if got := InHaplotype1(p, uint(i)); got != want {
			t.Errorf("InHaplotype1(%b, %d) = %v, want %v", p, i, got, want)
		}
	}
}

func TestAcceptMask(t *testing.T) {
	cases := []struct {
		depth uint
		want  uint64
	}{
		{0, 0},
		{1, 0b1},
		{4, 0b1111},
		{63, (uint64(1) << 63) - 1},
		{64, ^uint64(0)},
	}
	for _, c := range cases {
		if got := AcceptMask(c.depth); got != c.want {
			t.Errorf("AcceptMask(%d) = %b, want %b", c.depth, got, c.want)
		}
	}
}

func TestComplement(t *testing.T) {
	if got := Complement(0b0110, 4); got != 0b1001 {
		t.Errorf("Complement(0110, 4) = %b, want 1001", got)
	}
	if got := Complement(0, 3); got != 0b111 {
		t.Errorf("Complement(0, 3) = %b, want 111", got)
	}
}

func TestPopCount(t *testing.T) {
	if got := PopCount(0b1011); got != 3 {
		t.Errorf("PopCount(1011) = %d, want 3", got)
	}
}

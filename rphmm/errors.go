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

import "errors"

// Sentinel errors surfaced by the rphmm and tiling packages. Callers should
// use errors.Is against these, since call sites wrap them with fmt.Errorf
// for context.
var (
	// ErrCoverageExceeded is returned when the number of tiling paths
	// (i.e. the maximum local read depth) exceeds min(MaxCoverageDepth, 64).
	ErrCoverageExceeded = errors.New("rphmm: coverage depth exceeds configured maximum")

	// ErrHmmMismatch is returned by Fuse, AlignColumns, and CrossProduct
	// when their inputs are not eligible to be combined: different
	// reference names, different substitution matrices, overlapping or
	// inverted ranges for Fuse, or unaligned column structure for
	// CrossProduct.
	ErrHmmMismatch = errors.New("rphmm: hmms are not compatible for this operation")

	// ErrTracebackInfeasible is returned when a traceback cannot find a
	// compatible merge cell, which indicates over-aggressive pruning.
	// ForwardBackward also returns it when the forward and backward totals
	// disagree.
	ErrTracebackInfeasible = errors.New("rphmm: traceback found no compatible merge cell")

	// ErrInvalidCoordinates is returned by Params.Validate for a parameter
	// outside its allowed range. The constructors do not return it:
	// profileseq.NewEmpty panics on a non-positive length, and
	// NewFromProfileSeq and Fuse do not check for zero-length intervals.
	ErrInvalidCoordinates = errors.New("rphmm: invalid reference coordinates")
)

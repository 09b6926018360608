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

	"github.com/exascience/rphmm/partition"
	"github.com/exascience/rphmm/profileseq"
)

// Params bundles the tunables that influence tiling, pruning, and
// emission. The CLI/config layer that produces a Params value from flags
// or a config file is outside this engine's scope; Params is a plain
// struct of already-resolved values, the way filters.HaplotypeCaller in
// elprep is a plain struct of tunables rather than a config-file binding.
type Params struct {
	// PosteriorProbabilityThreshold is the posterior below which a cell
	// or merge cell is pruned.
	PosteriorProbabilityThreshold float64
	// MinColumnDepthToFilter is the minimum column/merge-column depth
	// before pruning is applied at all.
	MinColumnDepthToFilter int
	// MaxCoverageDepth is the hard cap on tiling depth (number of
	// simultaneous tiling paths).
	MaxCoverageDepth int
	// LogSubstitutionMatrix is the AlphabetSize x AlphabetSize row-major
	// matrix of natural-log P(derived | source).
	LogSubstitutionMatrix []float64
}

// Validate checks that p describes a usable parameter set.
func (p Params) Validate() error {
	if p.PosteriorProbabilityThreshold <= 0 || p.PosteriorProbabilityThreshold >= 1 {
		return fmt.Errorf("%w: posterior probability threshold %v must be in (0,1)", ErrInvalidCoordinates, p.PosteriorProbabilityThreshold)
	}
	if p.MinColumnDepthToFilter < 0 || p.MinColumnDepthToFilter > partition.MaxDepth {
		return fmt.Errorf("%w: min column depth to filter %v must be in [0,%d]", ErrInvalidCoordinates, p.MinColumnDepthToFilter, partition.MaxDepth)
	}
	if p.MaxCoverageDepth < 1 || p.MaxCoverageDepth > partition.MaxDepth {
		return fmt.Errorf("%w: max coverage depth %v must be in [1,%d]", ErrInvalidCoordinates, p.MaxCoverageDepth, partition.MaxDepth)
	}
	if len(p.LogSubstitutionMatrix) != profileseq.AlphabetSize*profileseq.AlphabetSize {
		return fmt.Errorf("%w: log substitution matrix must have %d entries, got %d", ErrInvalidCoordinates, profileseq.AlphabetSize*profileseq.AlphabetSize, len(p.LogSubstitutionMatrix))
	}
	return nil
}

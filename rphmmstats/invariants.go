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

package rphmmstats

import (
	"fmt"

	"github.com/exascience/rphmm/rphmm"
)

// CheckInvariants walks hmm's column chain and reports every structural
// invariant violation found, rather than aborting on the first one. If
// forwardBackwardRun is false, posterior-probability checks are skipped,
// since ForwardLogProb/BackwardLogProb are not yet meaningful. Grounded on
// the assert() calls scattered through
// original_source/impl/stRPHmm.c (column length, merge-column symmetry,
// posterior probability bounds).
func CheckInvariants(hmm *rphmm.HMM, forwardBackwardRun bool) []error {
	var errs []error

	columns := 0
	for column := hmm.FirstColumn; column != nil; column = rphmm.NextColumn(column) {
		columns++

		if column.Length <= 0 {
			errs = append(errs, fmt.Errorf("column at %d has non-positive length %d", column.RefStart, column.Length))
		}
		if column.CellCount() == 0 {
			errs = append(errs, fmt.Errorf("column at %d has no cells", column.RefStart))
		}

		if forwardBackwardRun {
			for cell := column.Head; cell != nil; cell = cell.Next {
				p := rphmm.PosteriorProb(hmm, cell)
				if p < 0 || p > 1.0+1e-3 {
					errs = append(errs, fmt.Errorf("column at %d: cell partition %d has out-of-range posterior %v", column.RefStart, cell.Partition, p))
				}
			}
		}

		if column.Next != nil {
			mergeColumn := column.Next
			if len(mergeColumn.CellsFrom) != len(mergeColumn.CellsTo) {
				errs = append(errs, fmt.Errorf("merge column after %d has %d from-cells but %d to-cells", column.RefStart, len(mergeColumn.CellsFrom), len(mergeColumn.CellsTo)))
			}
			if mergeColumn.Depth() == 0 {
				errs = append(errs, fmt.Errorf("merge column after %d has no merge cells", column.RefStart))
			}

			if forwardBackwardRun {
				for _, mCell := range mergeColumn.CellsFrom {
					p := rphmm.MergePosteriorProb(hmm, mCell)
					if p < 0 || p > 1.0+1e-3 {
						errs = append(errs, fmt.Errorf("merge column after %d: merge cell has out-of-range posterior %v", column.RefStart, p))
					}
				}
			}

			nextColumn := mergeColumn.Next
			if nextColumn == nil {
				errs = append(errs, fmt.Errorf("merge column after %d has no following column", column.RefStart))
			} else if nextColumn.RefStart != column.RefStart+column.Length {
				errs = append(errs, fmt.Errorf("column at %d (length %d) is not immediately followed by column at %d", column.RefStart, column.Length, nextColumn.RefStart))
			}
		}
	}

	if columns != hmm.ColumnNumber {
		errs = append(errs, fmt.Errorf("hmm.ColumnNumber is %d but the chain has %d columns", hmm.ColumnNumber, columns))
	}
	if hmm.FirstColumn != nil && hmm.FirstColumn.RefStart != hmm.RefStart {
		errs = append(errs, fmt.Errorf("hmm.RefStart is %d but first column starts at %d", hmm.RefStart, hmm.FirstColumn.RefStart))
	}

	return errs
}

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

package tiling

import (
	"golang.org/x/exp/slices"

	"github.com/exascience/rphmm/rphmm"
)

// findRep returns the representative index of x's group, path-compressing
// as it walks. Grounded on filters/graph.go:findRepNode, generalized from
// an int-indexed grouping slice to the same but over a combined index space
// spanning two tiling paths.
func findRep(grouping []int, x int) int {
	rep := x
	for rep != grouping[rep] {
		rep = grouping[rep]
	}
	for x != rep {
		next := grouping[x]
		grouping[x] = rep
		x = next
	}
	return rep
}

// joinIndices merges the groups containing x and y. Grounded on
// filters/graph.go:joinNodes.
func joinIndices(grouping []int, x, y int) {
	rx, ry := findRep(grouping, x), findRep(grouping, y)
	if rx != ry {
		grouping[rx] = ry
	}
}

// OverlapComponents partitions the HMMs of two non-overlapping, sorted
// tiling paths into connected components under the reference-overlap
// relation. Each returned component is itself sorted by CompareHMM.
// Grounded on
// original_source/impl/stRPHmm.c:getOverlappingComponents, generalized from
// its two-pointer sweep with an explicit hash-of-components into a plain
// union-find over a combined index space, in the style of
// filters/graph.go's own union-find-based clustering.
func OverlapComponents(path1, path2 TilingPath) []TilingPath {
	n1, n2 := len(path1), len(path2)
	grouping := make([]int, n1+n2)
	for i := range grouping {
		grouping[i] = i
	}

	j := 0
	for i := 0; i < n1; i++ {
		hmm1 := path1[i]
		k := 0
		for j+k < n2 {
			hmm2 := path2[j+k]
			if rphmm.OverlapOnReference(hmm1, hmm2) {
				joinIndices(grouping, i, n1+j+k)
				k++
				continue
			}
			if CompareHMM(hmm1, hmm2) < 0 {
				break
			}
			j++
		}
	}

	groups := make(map[int][]int)
	for i := 0; i < n1+n2; i++ {
		rep := findRep(grouping, i)
		groups[rep] = append(groups[rep], i)
	}

	components := make([]TilingPath, 0, len(groups))
	for _, indices := range groups {
		component := make(TilingPath, 0, len(indices))
		for _, idx := range indices {
			if idx < n1 {
				component = append(component, path1[idx])
			} else {
				component = append(component, path2[idx-n1])
			}
		}
		slices.SortFunc(component, CompareHMM)
		components = append(components, component)
	}
	slices.SortFunc(components, func(a, b TilingPath) int { return CompareHMM(a[0], b[0]) })
	return components
}

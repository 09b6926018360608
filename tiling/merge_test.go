package tiling

import (
	"testing"

	"github.com/exascience/rphmm/rphmm"
)

func testParams(matrix []float64) rphmm.Params {
	return rphmm.Params{
		PosteriorProbabilityThreshold: 0.01,
		MinColumnDepthToFilter:        64,
		MaxCoverageDepth:              64,
		LogSubstitutionMatrix:         matrix,
	}
}

func TestMergeTwoTilingPathsFusesOverlaps(t *testing.T) {
	matrix := testLogSubMatrix()
	path1 := TilingPath{testHMM("chr1", 0, 10, matrix)}
	path2 := TilingPath{testHMM("chr1", 5, 10, matrix)}

	merged, err := MergeTwoTilingPaths(path1, path2, testParams(matrix))
	if err != nil {
		t.Fatalf("MergeTwoTilingPaths: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("got %d hmms after merging two overlapping reads, want 1", len(merged))
	}
	if merged[0].RefStart != 0 || merged[0].RefEnd() != 15 {
		t.Errorf("merged hmm spans [%d,%d), want [0,15)", merged[0].RefStart, merged[0].RefEnd())
	}
}

func TestMergeTwoTilingPathsPassesThroughDisjointHmms(t *testing.T) {
	matrix := testLogSubMatrix()
	path1 := TilingPath{testHMM("chr1", 0, 10, matrix)}
	path2 := TilingPath{testHMM("chr1", 20, 10, matrix)}

	merged, err := MergeTwoTilingPaths(path1, path2, testParams(matrix))
	if err != nil {
		t.Fatalf("MergeTwoTilingPaths: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("got %d hmms for two disjoint reads, want 2", len(merged))
	}
}

func TestMergeTilingPathsOfManyPaths(t *testing.T) {
	matrix := testLogSubMatrix()
	paths := make([]TilingPath, 0, 6)
	for i := 0; i < 6; i++ {
		paths = append(paths, TilingPath{testHMM("chr1", i*10, 10, matrix)})
	}

	merged, err := MergeTilingPaths(paths, testParams(matrix))
	if err != nil {
		t.Fatalf("MergeTilingPaths: %v", err)
	}
	if len(merged) != 6 {
		t.Fatalf("got %d hmms after merging 6 disjoint reads, want 6", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i-1].RefStart >= merged[i].RefStart {
			t.Errorf("merged tiling path not sorted at index %d", i)
		}
	}
}

func TestMergeTilingPathsEmpty(t *testing.T) {
	merged, err := MergeTilingPaths(nil, testParams(testLogSubMatrix()))
	if err != nil {
		t.Fatalf("MergeTilingPaths: %v", err)
	}
	if len(merged) != 0 {
		t.Errorf("got %d hmms, want 0", len(merged))
	}
}

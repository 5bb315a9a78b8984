package analysis

import (
	"math"
	"math/rand"
)

const (
	coverageFloor   = 30.0
	coverageCeiling = 95.0
)

// CoverageEstimator derives the heuristic coverage figures from the ratio of
// test-like files to all files. This is an estimate by construction: the
// engine never executes tests. Implementations must return a zero-valued
// analysis for an empty file list.
type CoverageEstimator interface {
	Estimate(testRatio float64, files []FileRecord) CoverageAnalysis
}

// DeterministicEstimator reports the clamped base coverage for every figure
// with no jitter, so repeated runs over the same input are identical.
type DeterministicEstimator struct{}

// Estimate implements CoverageEstimator.
func (DeterministicEstimator) Estimate(testRatio float64, files []FileRecord) CoverageAnalysis {
	if len(files) == 0 {
		return CoverageAnalysis{Files: []FileCoverage{}}
	}

	base := baseCoverage(testRatio)
	perFile := make([]FileCoverage, len(files))
	for i, file := range files {
		perFile[i] = FileCoverage{File: file.Path, Coverage: base}
	}

	return CoverageAnalysis{
		Overall:   base,
		Lines:     base,
		Functions: base,
		Branches:  base,
		Files:     perFile,
	}
}

// JitterEstimator offsets every figure from the base coverage by a bounded
// pseudo-random amount. A fixed seed makes the jitter reproducible. Not safe for concurrent use; estimation runs once
// per analysis after scanning completes.
type JitterEstimator struct {
	rng *rand.Rand
}

// NewJitterEstimator creates a jittering estimator seeded with the given
// value.
func NewJitterEstimator(seed int64) *JitterEstimator {
	return &JitterEstimator{rng: rand.New(rand.NewSource(seed))}
}

// Estimate implements CoverageEstimator.
func (e *JitterEstimator) Estimate(testRatio float64, files []FileRecord) CoverageAnalysis {
	if len(files) == 0 {
		return CoverageAnalysis{Files: []FileCoverage{}}
	}

	base := baseCoverage(testRatio)
	perFile := make([]FileCoverage, len(files))
	for i, file := range files {
		perFile[i] = FileCoverage{File: file.Path, Coverage: e.jittered(base, 10)}
	}

	return CoverageAnalysis{
		Overall:   e.jittered(base, 5),
		Lines:     e.jittered(base, 5),
		Functions: e.jittered(base-5, 5),
		Branches:  e.jittered(base-10, 5),
		Files:     perFile,
	}
}

// jittered offsets a value by a uniform amount in [-span, span], clamped to
// a valid percentage and rounded to one decimal.
func (e *JitterEstimator) jittered(value, span float64) float64 {
	offset := (e.rng.Float64()*2 - 1) * span
	return round1(clamp(value+offset, 0, 100))
}

func baseCoverage(testRatio float64) float64 {
	return clamp(testRatio*100, coverageFloor, coverageCeiling)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

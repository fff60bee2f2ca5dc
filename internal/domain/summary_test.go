package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSummary(t *testing.T) {
	line := Counter{Missed: 2, Covered: 8}
	branch := Counter{Missed: 5, Covered: 5}
	records := []ClassCoverage{
		{Name: "com.x.Foo", Line: line},
	}

	s := NewSummary(line, branch, records)

	assert.True(t, s.Success)
	assert.Empty(t, s.Error)
	assert.InDelta(t, 0.8, s.LineCoverage, 1e-9)
	assert.InDelta(t, 0.5, s.BranchCoverage, 1e-9)
	assert.Equal(t, []string{"com.x.Foo"}, s.WorstClasses)
}

func TestNewSummaryZeroDenominators(t *testing.T) {
	s := NewSummary(Counter{}, Counter{}, nil)

	assert.True(t, s.Success)
	assert.Zero(t, s.LineCoverage)
	assert.Zero(t, s.BranchCoverage)
	assert.Empty(t, s.WorstClasses)
}

func TestFailedSummary(t *testing.T) {
	s := FailedSummary("no reports found under /repo")

	assert.False(t, s.Success)
	assert.Equal(t, "no reports found under /repo", s.Error)
	assert.Zero(t, s.LineCoverage)
	assert.Empty(t, s.WorstClasses)
}

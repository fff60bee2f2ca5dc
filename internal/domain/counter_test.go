package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterRatio(t *testing.T) {
	tests := []struct {
		name    string
		counter Counter
		want    float64
	}{
		{"fully covered", Counter{Missed: 0, Covered: 10}, 1.0},
		{"partially covered", Counter{Missed: 2, Covered: 8}, 0.8},
		{"uncovered", Counter{Missed: 5, Covered: 0}, 0.0},
		{"nothing measured", Counter{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.counter.Ratio()
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestCounterAddCommutative(t *testing.T) {
	a := Counter{Missed: 3, Covered: 7}
	b := Counter{Missed: 1, Covered: 9}

	assert.Equal(t, a.Add(b), b.Add(a))
	assert.Equal(t, Counter{Missed: 4, Covered: 16}, a.Add(b))
}

func TestRankWorstAscending(t *testing.T) {
	records := []ClassCoverage{
		{Name: "com.x.High", Line: Counter{Missed: 1, Covered: 9}},
		{Name: "com.x.Low", Line: Counter{Missed: 9, Covered: 1}},
		{Name: "com.x.Mid", Line: Counter{Missed: 5, Covered: 5}},
	}

	got := RankWorst(records, WorstClassLimit)

	assert.Equal(t, []string{"com.x.Low", "com.x.Mid", "com.x.High"}, got)
}

func TestRankWorstTruncates(t *testing.T) {
	records := make([]ClassCoverage, 0, 30)
	for i := 0; i < 30; i++ {
		records = append(records, ClassCoverage{
			Name: fmt.Sprintf("com.x.Class%02d", i),
			Line: Counter{Missed: i, Covered: 30 - i},
		})
	}

	got := RankWorst(records, WorstClassLimit)

	assert.Len(t, got, WorstClassLimit)
	// Worst class (highest missed count) ranks first.
	assert.Equal(t, "com.x.Class29", got[0])
}

func TestRankWorstTieBreaksByName(t *testing.T) {
	records := []ClassCoverage{
		{Name: "com.x.Beta", Line: Counter{Missed: 1, Covered: 1}},
		{Name: "com.x.Alpha", Line: Counter{Missed: 1, Covered: 1}},
	}

	got := RankWorst(records, WorstClassLimit)

	assert.Equal(t, []string{"com.x.Alpha", "com.x.Beta"}, got)
}

func TestRankWorstKeepsDuplicates(t *testing.T) {
	// The same class appearing in two reports contributes two entries.
	records := []ClassCoverage{
		{Name: "com.x.Foo", Line: Counter{Missed: 8, Covered: 2}},
		{Name: "com.x.Foo", Line: Counter{Missed: 2, Covered: 8}},
	}

	got := RankWorst(records, WorstClassLimit)

	assert.Equal(t, []string{"com.x.Foo", "com.x.Foo"}, got)
}

func TestRankWorstDoesNotMutateInput(t *testing.T) {
	records := []ClassCoverage{
		{Name: "com.x.B", Line: Counter{Missed: 1, Covered: 9}},
		{Name: "com.x.A", Line: Counter{Missed: 9, Covered: 1}},
	}

	_ = RankWorst(records, WorstClassLimit)

	assert.Equal(t, "com.x.B", records[0].Name)
}

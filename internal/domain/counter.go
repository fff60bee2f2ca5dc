// Package domain holds the coverage model and the pure scope-filtering logic.
// Nothing in this package performs I/O; everything is deterministic.
package domain

import "sort"

// CounterKind identifies the coverage metric a counter measures.
type CounterKind string

const (
	// KindLine counts executable source lines.
	KindLine CounterKind = "LINE"
	// KindBranch counts conditional branches.
	KindBranch CounterKind = "BRANCH"
)

// Counter is a missed/covered pair for one coverage metric.
// Both fields are non-negative; a zero-total counter has no defined ratio.
type Counter struct {
	Missed  int `json:"missed"`
	Covered int `json:"covered"`
}

// Total returns the number of measured units.
func (c Counter) Total() int {
	return c.Missed + c.Covered
}

// Ratio returns covered/total in [0,1], or 0 when nothing was measured.
func (c Counter) Ratio() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Covered) / float64(total)
}

// Add returns the arithmetic sum of two counters. Addition is commutative,
// so merge order across report files never affects the result.
func (c Counter) Add(other Counter) Counter {
	return Counter{
		Missed:  c.Missed + other.Missed,
		Covered: c.Covered + other.Covered,
	}
}

// ClassCoverage is the line coverage recorded for a single class that
// survived scope filtering. Ownership transfers to the aggregator as soon
// as the parser emits it; it is never mutated afterwards.
type ClassCoverage struct {
	Name string
	Line Counter
}

// Ratio returns the class's line coverage ratio.
func (cc ClassCoverage) Ratio() float64 {
	return cc.Line.Ratio()
}

// WorstClassLimit caps the ranked class list in a Summary.
const WorstClassLimit = 20

// RankWorst sorts class records ascending by coverage ratio and returns the
// names of the first limit entries. Ties are broken by name so the ranking
// is deterministic regardless of the order files were parsed in. Records
// are not de-duplicated: a class present in two reports contributes two
// entries.
func RankWorst(records []ClassCoverage, limit int) []string {
	ranked := make([]ClassCoverage, len(records))
	copy(ranked, records)

	sort.Slice(ranked, func(i, j int) bool {
		ri, rj := ranked[i].Ratio(), ranked[j].Ratio()
		if ri != rj {
			return ri < rj
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	return names
}

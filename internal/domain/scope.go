package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// builtinExclusions are noise patterns that are never worth testing:
// generated code, plain data carriers and exception hierarchies. They are
// matched case-insensitively against the fully qualified class name and
// win over every inclusion rule, including explicit class targets.
var builtinExclusions = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|\.)generated(\.|$)`),
	regexp.MustCompile(`(?i)(^|\.)dtos?(\.|$)`),
	regexp.MustCompile(`(?i)(^|\.)models?(\.|$)`),
	regexp.MustCompile(`(?i)(^|\.)exceptions?(\.|$)`),
	regexp.MustCompile(`(?i)(Dto|Exception)$`),
}

// ScopeQuery is the immutable filter set for one aggregation
// request. Modules only steer report discovery; Packages and Classes
// participate in per-class filtering.
type ScopeQuery struct {
	Modules  []string
	Packages []string
	Classes  []string

	excludes []*regexp.Regexp
}

// NewScopeQuery builds a query from the comma-separated lists handed over
// by the orchestrating caller. Entries are trimmed and empty entries
// dropped. The built-in exclusion patterns are always active.
func NewScopeQuery(modules, packages, classes string) ScopeQuery {
	return ScopeQuery{
		Modules:  SplitList(modules),
		Packages: SplitList(packages),
		Classes:  SplitList(classes),
		excludes: builtinExclusions,
	}
}

// WithExcludePatterns returns a copy of the query with additional exclusion
// regexps compiled in. The built-in set is always retained.
func (q ScopeQuery) WithExcludePatterns(patterns []string) (ScopeQuery, error) {
	if len(patterns) == 0 {
		return q, nil
	}
	excludes := make([]*regexp.Regexp, 0, len(builtinExclusions)+len(patterns))
	excludes = append(excludes, builtinExclusions...)
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return q, fmt.Errorf("compile exclude pattern %q: %w", p, err)
		}
		excludes = append(excludes, re)
	}
	q.excludes = excludes
	return q, nil
}

// Includes decides whether a fully qualified class name belongs to the
// requested scope. The function is total: every input has an answer, and
// calling it twice with the same input always yields the same result.
//
// Precedence, highest first:
//  1. exclusion patterns drop the class unconditionally;
//  2. with no package and no class targets, everything is included;
//  3. otherwise the class must match a package prefix or a class target.
func (q ScopeQuery) Includes(className string) bool {
	for _, re := range q.excludes {
		if re.MatchString(className) {
			return false
		}
	}

	if len(q.Packages) == 0 && len(q.Classes) == 0 {
		return true
	}

	for _, pkg := range q.Packages {
		if strings.HasPrefix(className, pkg) {
			return true
		}
	}
	for _, cls := range q.Classes {
		// Tolerate callers passing a simple class name instead of a
		// fully qualified one.
		if className == cls || strings.HasSuffix(className, "."+cls) {
			return true
		}
	}
	return false
}

// SplitList parses a comma-separated list, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Package locator discovers JaCoCo report files in a project tree.
package locator

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"jacoscope/internal/domain"
	"jacoscope/internal/pathutil"
)

// Default conventions for Gradle and Maven trees.
const (
	DefaultReportName    = "jacocoTestReport.xml"
	DefaultModuleReport  = "build/reports/jacoco/test/jacocoTestReport.xml"
	DefaultStandardsFile = "TESTING_STANDARDS.md"
)

// DefaultRootReports are the conventional aggregate-report locations
// probed at the project root, in priority order.
var DefaultRootReports = []string{
	"build/reports/jacoco/root/jacocoRootReport.xml",
	"build/reports/jacoco/test/jacocoTestReport.xml",
	"target/site/jacoco/jacoco.xml",
}

// directivePattern recognizes a report-path override in the project's
// standards document, e.g. "Report Path: build/custom/jacoco.xml".
var directivePattern = regexp.MustCompile(`(?i)(?:Report Path|Jacoco.*Report):\s*([^\s]+)`)

// Finder implements application.ReportLocator. The zero value is not
// usable; construct with New and override fields from config as needed.
type Finder struct {
	// ReportName is the file name matched by the recursive search tier.
	ReportName string
	// ModuleReport is the report path probed under each target module.
	ModuleReport string
	// RootReports are root-relative aggregate paths, highest priority
	// first.
	RootReports []string
	// StandardsFile is the project document that may carry a report-path
	// directive.
	StandardsFile string
}

// New returns a Finder with the conventional Gradle/Maven defaults.
func New() *Finder {
	return &Finder{
		ReportName:    DefaultReportName,
		ModuleReport:  DefaultModuleReport,
		RootReports:   append([]string(nil), DefaultRootReports...),
		StandardsFile: DefaultStandardsFile,
	}
}

// Locate resolves the report files for a query. Tiers, first success
// wins:
//  1. a report-path directive in the standards document, used exclusively;
//  2. the conventional module report of each target module;
//  3. the first existing conventional root aggregate report;
//  4. a recursive search for files named ReportName.
//
// The result is ordered and de-duplicated; an empty result means nothing
// exists under any tier.
func (f *Finder) Locate(root string, query domain.ScopeQuery) ([]string, error) {
	cleanRoot, err := pathutil.ValidatePath(root)
	if err != nil {
		return nil, fmt.Errorf("invalid project root: %w", err)
	}

	if path, ok := f.fromStandards(cleanRoot); ok {
		return []string{path}, nil
	}

	if paths := f.fromModules(cleanRoot, query.Modules); len(paths) > 0 {
		return paths, nil
	}

	for _, rel := range f.RootReports {
		if path, ok := probe(filepath.Join(cleanRoot, rel)); ok {
			return []string{path}, nil
		}
	}

	return f.search(cleanRoot)
}

// fromStandards reads the standards document and resolves its directive,
// if any. A directive pointing at a missing file is ignored so the lower
// tiers still get a chance.
func (f *Finder) fromStandards(root string) (string, bool) {
	raw, err := os.ReadFile(filepath.Join(root, f.StandardsFile)) // #nosec G304 - root is validated
	if err != nil {
		return "", false
	}

	m := directivePattern.FindSubmatch(raw)
	if m == nil {
		return "", false
	}

	custom := strings.TrimSpace(string(m[1]))
	if !filepath.IsAbs(custom) {
		custom = filepath.Join(root, custom)
	}
	return probe(custom)
}

// fromModules probes the conventional report of every target module and
// keeps the ones that exist, preserving the query's module order.
func (f *Finder) fromModules(root string, modules []string) []string {
	var paths []string
	for _, mod := range modules {
		if path, ok := probe(filepath.Join(root, mod, f.ModuleReport)); ok {
			paths = append(paths, path)
		}
	}
	return dedupe(paths)
}

// search walks the whole tree for files matching ReportName. Hidden
// directories are skipped; results are sorted for determinism.
func (f *Finder) search(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == f.ReportName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", root, err)
	}

	sort.Strings(paths)
	return dedupe(paths), nil
}

func probe(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

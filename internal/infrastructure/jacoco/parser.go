// Package jacoco implements a streaming parser for JaCoCo XML coverage
// reports.
//
// Reports for large multi-module builds routinely run to tens of
// megabytes, so the parser never materializes the document tree: it walks
// the token stream and keeps at most one class element's worth of state
// at a time. Class subtrees that fail the scope filter are skipped without
// touching their counters.
package jacoco

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"jacoscope/internal/application"
	"jacoscope/internal/domain"
	"jacoscope/internal/pathutil"
)

// Parser implements application.ReportParser for the JaCoCo XML format.
type Parser struct{}

// New creates a new JaCoCo parser.
func New() *Parser {
	return &Parser{}
}

// Parse streams one report file and returns its scope-filtered totals and
// class records. A malformed or unreadable file yields an error; the
// aggregator decides whether that sinks the whole request.
func (p *Parser) Parse(path string, query domain.ScopeQuery) (application.FileResult, error) {
	cleanPath, err := pathutil.ValidatePath(path)
	if err != nil {
		return application.FileResult{}, fmt.Errorf("invalid report path: %w", err)
	}

	file, err := os.Open(cleanPath) // #nosec G304 - path is validated above
	if err != nil {
		return application.FileResult{}, fmt.Errorf("open jacoco report: %w", err)
	}
	defer file.Close()

	return parse(xml.NewDecoder(file), query)
}

func parse(dec *xml.Decoder, query domain.ScopeQuery) (application.FileResult, error) {
	var res application.FileResult

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return application.FileResult{}, fmt.Errorf("decode jacoco xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "class" {
			// Other elements (report, group, package, sourcefile) are
			// descended into or passed over token by token.
			continue
		}

		name := strings.ReplaceAll(attr(se, "name"), "/", ".")
		if !query.Includes(name) {
			if err := dec.Skip(); err != nil {
				return application.FileResult{}, fmt.Errorf("skip excluded class %s: %w", name, err)
			}
			continue
		}

		line, branch, err := classCounters(dec)
		if err != nil {
			return application.FileResult{}, fmt.Errorf("class %s: %w", name, err)
		}

		res.Line = res.Line.Add(line)
		res.Branch = res.Branch.Add(branch)
		// Classes with no measured lines (interfaces, markers) carry no
		// rankable signal and are left out of the class list.
		if line.Total() > 0 {
			res.Classes = append(res.Classes, domain.ClassCoverage{Name: name, Line: line})
		}
	}

	return res, nil
}

// classCounters consumes the remainder of a class element and returns its
// immediate child LINE and BRANCH counters. Children other than counters
// (methods with their own nested counters) are skipped wholesale so their
// counters are never double-counted.
func classCounters(dec *xml.Decoder) (line, branch domain.Counter, err error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return domain.Counter{}, domain.Counter{}, fmt.Errorf("decode jacoco xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "counter" {
				c, kind, err := counterFrom(t)
				if err != nil {
					return domain.Counter{}, domain.Counter{}, err
				}
				switch kind {
				case domain.KindLine:
					line = line.Add(c)
				case domain.KindBranch:
					branch = branch.Add(c)
				}
			}
			// Drop the child's subtree either way; every StartElement
			// seen here is an immediate child of the class element.
			if err := dec.Skip(); err != nil {
				return domain.Counter{}, domain.Counter{}, fmt.Errorf("decode jacoco xml: %w", err)
			}
		case xml.EndElement:
			// End of the class element itself.
			return line, branch, nil
		}
	}
}

func counterFrom(se xml.StartElement) (domain.Counter, domain.CounterKind, error) {
	kind := domain.CounterKind(attr(se, "type"))

	missed, err := nonNegativeAttr(se, "missed")
	if err != nil {
		return domain.Counter{}, kind, err
	}
	covered, err := nonNegativeAttr(se, "covered")
	if err != nil {
		return domain.Counter{}, kind, err
	}

	return domain.Counter{Missed: missed, Covered: covered}, kind, nil
}

func nonNegativeAttr(se xml.StartElement, name string) (int, error) {
	raw := attr(se, name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("counter attribute %s=%q: %w", name, raw, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("counter attribute %s=%d is negative", name, v)
	}
	return v, nil
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Package gridmove parses GridMove grid template files.
//
// A template is an ini-like text format: a bracketed line such as [1] opens
// a section, and the lines that follow assign directive values until the
// next marker or end of input. Only the four directional bound directives
// (GridTop, GridBottom, GridLeft, GridRight) matter for conversion; the
// trigger directives GridMove uses for mouse handling are ignored.
//
// Parsing is best-effort per line. Problems inside a template (a line with
// no separator, a section missing one of its bounds) are recorded as
// diagnostics on the returned Template and never abort the scan.
package gridmove

import (
	"github.com/matzehuels/gridkz/pkg/errors"
)

// Directive keys retained by the parser. This is a closed allow-list:
// every other key is ignored, so trigger values and future GridMove
// directives never reach the expression evaluator.
const (
	KeyTop    = "GridTop"
	KeyBottom = "GridBottom"
	KeyLeft   = "GridLeft"
	KeyRight  = "GridRight"
)

// BoundKeys lists the four required directive keys in canonical order.
var BoundKeys = [4]string{KeyTop, KeyBottom, KeyLeft, KeyRight}

// Section is one bracketed group of bound expressions. Bounds maps a
// directive key (KeyTop, KeyBottom, KeyLeft, KeyRight) to the raw
// expression text to its right. Sections returned by Parse always carry
// all four keys; incomplete groups are dropped during parsing with a
// diagnostic.
type Section struct {
	Name   string
	Line   int // line number of the [Name] marker, 1-based
	Bounds map[string]string
}

// Missing returns the bound keys the section does not define, in
// canonical order.
func (s *Section) Missing() []string {
	var missing []string
	for _, key := range BoundKeys {
		if _, ok := s.Bounds[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Complete reports whether all four bound keys are present.
func (s *Section) Complete() bool {
	return len(s.Missing()) == 0
}

// Diagnostic records a recoverable problem found while parsing, attributed
// to a line and, when known, the section being scanned at the time.
type Diagnostic struct {
	Line    int
	Section string
	Code    errors.Code
	Message string
}

// Template is the parse result for one input file: the complete sections
// in file order plus the diagnostics collected along the way.
type Template struct {
	Sections    []Section
	Diagnostics []Diagnostic
}

// Incomplete returns the number of sections that were dropped for missing
// bound keys.
func (t *Template) Incomplete() int {
	n := 0
	for _, d := range t.Diagnostics {
		if d.Code == errors.ErrCodeIncompleteSection {
			n++
		}
	}
	return n
}

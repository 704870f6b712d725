package gridmove

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/matzehuels/gridkz/pkg/errors"
)

// Parse scans a GridMove template from r and returns the sections it
// defines. Per-line problems degrade to diagnostics on the Template; the
// only error Parse itself returns is a read failure from r.
func Parse(r io.Reader) (*Template, error) {
	t := &Template{}

	var cur *Section
	flush := func() {
		if cur == nil {
			return
		}
		if missing := cur.Missing(); len(missing) > 0 {
			t.Diagnostics = append(t.Diagnostics, Diagnostic{
				Line:    cur.Line,
				Section: cur.Name,
				Code:    errors.ErrCodeIncompleteSection,
				Message: "missing " + strings.Join(missing, ", "),
			})
		} else {
			t.Sections = append(t.Sections, *cur)
		}
		cur = nil
	}

	lineNo := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		// Section marker opens a new group; anything after ] is ignored.
		if name, ok := sectionMarker(line); ok {
			flush()
			cur = &Section{Name: name, Line: lineNo, Bounds: make(map[string]string)}
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			t.Diagnostics = append(t.Diagnostics, Diagnostic{
				Line:    lineNo,
				Section: currentName(cur),
				Code:    errors.ErrCodeMalformedLine,
				Message: "no '=' separator",
			})
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			t.Diagnostics = append(t.Diagnostics, Diagnostic{
				Line:    lineNo,
				Section: currentName(cur),
				Code:    errors.ErrCodeMalformedLine,
				Message: "empty key",
			})
			continue
		}

		// Keys outside the allow-list (Trigger*, monitor hints, ...) and
		// directives before the first marker are dropped without note.
		if cur == nil || !isBoundKey(key) {
			continue
		}

		cur.Bounds[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read template")
	}
	flush()

	return t, nil
}

// ParseBytes parses a template held in memory.
func ParseBytes(data []byte) (*Template, error) {
	return Parse(bytes.NewReader(data))
}

// sectionMarker reports whether line opens a section and returns its name.
// A marker is a [ followed by a non-empty name and a ]. Text after the
// closing bracket is ignored, matching how GridMove itself scans grids.
func sectionMarker(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "", false
	}
	name := strings.TrimSpace(line[1:end])
	if name == "" {
		return "", false
	}
	return name, true
}

func isBoundKey(key string) bool {
	switch key {
	case KeyTop, KeyBottom, KeyLeft, KeyRight:
		return true
	}
	return false
}

func currentName(cur *Section) string {
	if cur == nil {
		return ""
	}
	return cur.Name
}

package expr

import (
	"fmt"
	"sort"
	"strings"
)

// Context is an immutable mapping from monitor-geometry variable names to
// their fixed percentage values. A Context is built once (at startup or per
// request) and passed explicitly into Eval; it is never mutated afterwards,
// so a single Context is safe to share across goroutines.
type Context struct {
	vars map[string]float64
}

// DefaultContext returns the standard single-monitor context. Width and
// height style variables evaluate to 100, origin style variables to 0.
func DefaultContext() Context {
	return NewContext(map[string]float64{
		"Monitor1Left":   0,
		"Monitor1Top":    0,
		"Monitor1Width":  100,
		"Monitor1Height": 100,
		"Monitor1Right":  100,
		"Monitor1Bottom": 100,
	})
}

// NewContext builds a Context from the given variable values. The map is
// copied, so later changes to it do not affect the Context.
func NewContext(vars map[string]float64) Context {
	m := make(map[string]float64, len(vars))
	for k, v := range vars {
		m[k] = v
	}
	return Context{vars: m}
}

// Extend returns a new Context containing the receiver's variables plus the
// given extras. Extras win on name collision. The receiver is unchanged.
func (c Context) Extend(extra map[string]float64) Context {
	m := make(map[string]float64, len(c.vars)+len(extra))
	for k, v := range c.vars {
		m[k] = v
	}
	for k, v := range extra {
		m[k] = v
	}
	return Context{vars: m}
}

// Lookup returns the value bound to name.
func (c Context) Lookup(name string) (float64, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Len returns the number of variables in the context.
func (c Context) Len() int { return len(c.vars) }

// Names returns the variable names in sorted order.
func (c Context) Names() []string {
	names := make([]string, 0, len(c.vars))
	for k := range c.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fingerprint returns a canonical string representation of the context,
// suitable for cache keys. Equal contexts produce equal fingerprints.
func (c Context) Fingerprint() string {
	var b strings.Builder
	for i, name := range c.Names() {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s=%g", name, c.vars[name])
	}
	return b.String()
}

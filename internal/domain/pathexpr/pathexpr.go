// Package pathexpr parses and resolves path expressions that address a value
// inside a nested document tree, e.g. {shares}->{dead} or {items}->[0]->{id}.
package pathexpr

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is a single access in a path expression: either a mapping-key lookup
// or a sequence-index lookup.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// Token returns the step as it appears in the expression text, without the
// surrounding braces or brackets.
func (s Step) Token() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Expression is a parsed path expression. Immutable after Parse.
type Expression struct {
	raw   string
	steps []Step
}

// Parse parses a path expression of the form {key}->{key}->[index]->...
// The -> separators are optional. Everything between { and } is treated as
// an opaque key, so namespace-qualified names like {dmb:connections} keep
// their internal punctuation.
func Parse(raw string) (Expression, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Expression{}, fmt.Errorf("empty path expression")
	}

	var steps []Step
	for len(s) > 0 {
		if len(steps) > 0 && strings.HasPrefix(s, "->") {
			s = s[2:]
			if s == "" {
				return Expression{}, fmt.Errorf("path %q: trailing separator", raw)
			}
		}
		switch {
		case strings.HasPrefix(s, "{"):
			end := strings.Index(s, "}")
			if end < 0 {
				return Expression{}, fmt.Errorf("path %q: unterminated key", raw)
			}
			steps = append(steps, Step{Key: s[1:end]})
			s = s[end+1:]
		case strings.HasPrefix(s, "["):
			end := strings.Index(s, "]")
			if end < 0 {
				return Expression{}, fmt.Errorf("path %q: unterminated index", raw)
			}
			idx, err := strconv.Atoi(s[1:end])
			if err != nil || idx < 0 {
				return Expression{}, fmt.Errorf("path %q: %q is not a valid index", raw, s[1:end])
			}
			steps = append(steps, Step{Index: idx, IsIndex: true})
			s = s[end+1:]
		default:
			return Expression{}, fmt.Errorf("path %q: unexpected character %q, want { or [", raw, s[0])
		}
	}

	return Expression{raw: strings.TrimSpace(raw), steps: steps}, nil
}

// Key returns an expression addressing a single top-level mapping key.
// Used by wildcard expansion, where keys are not re-parsed as syntax.
func Key(key string) Expression {
	return Expression{raw: "{" + key + "}", steps: []Step{{Key: key}}}
}

// String returns the original expression text.
func (e Expression) String() string { return e.raw }

// Steps returns the parsed steps in order.
func (e Expression) Steps() []Step { return e.steps }

// LastToken returns the text of the final step, used to derive metric labels.
func (e Expression) LastToken() string {
	if len(e.steps) == 0 {
		return ""
	}
	return e.steps[len(e.steps)-1].Token()
}

// Resolve walks the expression against root and returns the addressed node.
// Resolution is pure: missing keys, out-of-range indices, and attempts to
// descend into a scalar all report not-found rather than an error.
func Resolve(root any, expr Expression) (any, bool) {
	node := root
	for _, step := range expr.steps {
		if step.IsIndex {
			seq, ok := node.([]any)
			if !ok || step.Index >= len(seq) {
				return nil, false
			}
			node = seq[step.Index]
			continue
		}
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		child, ok := m[step.Key]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

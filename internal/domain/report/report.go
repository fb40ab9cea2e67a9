// Package report builds the human-readable status message and the
// machine-readable perfdata string of a probe run.
package report

import (
	"sort"
	"strings"

	"github.com/yifangd/check-json/internal/domain"
	"github.com/yifangd/check-json/internal/domain/pathexpr"
)

// Format renders the message and perfdata sections. Attribute results come
// first, in the order given, except where a perf field names the same path;
// those keep the attribute's computed value and thresholds but slot into the
// perf order. Output fields contribute to the message only, once per path.
// Fields that do not resolve to a numeric value are skipped silently, as a
// best-effort policy for optional fields.
func Format(root any, results []domain.AttributeResult, perf, output domain.FieldList) (string, string) {
	var segments []string
	var tokens []string

	perfExprs := expand(root, perf)
	perfPaths := make(map[string]bool, len(perfExprs))
	for _, expr := range perfExprs {
		perfPaths[expr.String()] = true
	}

	seen := make(map[string]bool, len(results))
	deferred := make(map[string]domain.PerfMetric)

	for _, res := range results {
		seen[res.Path] = true
		if res.Err != nil {
			segments = append(segments, res.Label+": "+errNote(res.Err))
			continue
		}
		segments = append(segments, res.Label+": "+domain.FormatNumber(res.Value))
		metric := domain.PerfMetric{
			Label:    domain.SanitizeLabel(res.Label),
			Value:    res.Value,
			Warning:  res.Spec.Warning,
			Critical: res.Spec.Critical,
		}
		// An attribute swept up by a perf field keeps its computed value and
		// thresholds, but is emitted at the field's position in the perf
		// order so a wildcard sweep stays sorted by key.
		if perfPaths[res.Path] {
			deferred[res.Path] = metric
			continue
		}
		tokens = append(tokens, metric.Token())
	}

	for _, expr := range perfExprs {
		path := expr.String()
		if seen[path] {
			if metric, ok := deferred[path]; ok {
				tokens = append(tokens, metric.Token())
				delete(deferred, path)
			}
			continue
		}
		value, ok := resolveNumeric(root, expr)
		if !ok {
			continue
		}
		seen[path] = true
		segments = append(segments, expr.LastToken()+": "+domain.FormatNumber(value))
		metric := domain.PerfMetric{Label: domain.SanitizeLabel(expr.LastToken()), Value: value}
		tokens = append(tokens, metric.Token())
	}

	for _, expr := range expand(root, output) {
		if seen[expr.String()] {
			continue
		}
		value, ok := resolveNumeric(root, expr)
		if !ok {
			continue
		}
		segments = append(segments, expr.LastToken()+": "+domain.FormatNumber(value))
	}

	return strings.Join(segments, ", "), strings.Join(tokens, " ")
}

// expand turns a field list into concrete path expressions. The wildcard
// expands to every top-level key of the document, in sorted key order, and
// takes the place of any explicitly listed paths.
func expand(root any, fields domain.FieldList) []pathexpr.Expression {
	if !fields.Wildcard {
		return fields.Paths
	}
	m, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	exprs := make([]pathexpr.Expression, 0, len(keys))
	for _, k := range keys {
		exprs = append(exprs, pathexpr.Key(k))
	}
	return exprs
}

func resolveNumeric(root any, expr pathexpr.Expression) (float64, bool) {
	node, found := pathexpr.Resolve(root, expr)
	if !found {
		return 0, false
	}
	return domain.NumericValue(node)
}

func errNote(err *domain.CheckError) string {
	if err.Kind == domain.KindNotNumeric {
		return "not numeric"
	}
	return "missing"
}

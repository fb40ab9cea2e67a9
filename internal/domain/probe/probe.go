// Package probe evaluates configured attributes against a parsed document
// and folds the per-attribute outcomes into one overall status.
package probe

import (
	"sort"

	"github.com/yifangd/check-json/internal/domain"
	"github.com/yifangd/check-json/internal/domain/pathexpr"
	"github.com/yifangd/check-json/internal/domain/threshold"
)

// Classify returns the severity of value against the warning and critical
// ranges. Critical is checked first; a nil range never triggers.
func Classify(value float64, warn, crit *threshold.Range) domain.Status {
	if crit != nil && crit.Alarms(value) {
		return domain.StatusCritical
	}
	if warn != nil && warn.Alarms(value) {
		return domain.StatusWarning
	}
	return domain.StatusOK
}

// Evaluate resolves one attribute against the document root, applies its
// divisor, and classifies the scaled value. Resolution or coercion failures
// produce an UNKNOWN result carrying the error; they are never fatal, so the
// caller can still report the remaining attributes.
func Evaluate(root any, spec domain.AttributeSpec) domain.AttributeResult {
	res := domain.AttributeResult{
		Spec:  spec,
		Path:  spec.Path.String(),
		Label: spec.Label(),
	}

	node, found := pathexpr.Resolve(root, spec.Path)
	if !found {
		res.Status = domain.StatusUnknown
		res.Err = domain.NewMissingValueError(res.Path)
		return res
	}

	raw, ok := domain.NumericValue(node)
	if !ok {
		res.Status = domain.StatusUnknown
		res.Err = domain.NewNotNumericError(res.Path)
		return res
	}

	res.Raw = raw
	res.Value = raw / spec.Divisor
	res.Status = Classify(res.Value, spec.Warning, spec.Critical)
	return res
}

// EvaluateAll evaluates every spec in deterministic order, sorted by path
// string, so output is reproducible across runs on identical input.
func EvaluateAll(root any, specs []domain.AttributeSpec) []domain.AttributeResult {
	ordered := make([]domain.AttributeSpec, len(specs))
	copy(ordered, specs)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Path.String() < ordered[j].Path.String()
	})

	results := make([]domain.AttributeResult, 0, len(ordered))
	for _, spec := range ordered {
		results = append(results, Evaluate(root, spec))
	}
	return results
}

// Aggregate folds per-attribute statuses into one overall status,
// worst-wins. An empty result set is UNKNOWN.
func Aggregate(results []domain.AttributeResult) domain.Status {
	if len(results) == 0 {
		return domain.StatusUnknown
	}
	overall := domain.StatusOK
	for _, r := range results {
		overall = domain.Worst(overall, r.Status)
	}
	return overall
}

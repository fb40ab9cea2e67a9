package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yifangd/check-json/internal/domain"
	"github.com/yifangd/check-json/internal/domain/pathexpr"
	"github.com/yifangd/check-json/internal/domain/probe"
	"github.com/yifangd/check-json/internal/domain/threshold"
)

func document() map[string]any {
	return map[string]any{
		"shares": map[string]any{
			"dead": 2,
			"live": 12,
		},
		"clients": map[string]any{
			"connected": 234,
		},
		"version": "not-a-number",
		"stringy": "42",
	}
}

func spec(t *testing.T, path, warn, crit string, divisor float64) domain.AttributeSpec {
	t.Helper()
	expr, err := pathexpr.Parse(path)
	require.NoError(t, err)

	s := domain.AttributeSpec{Path: expr, Divisor: divisor}
	if warn != "" {
		r, err := threshold.Parse(warn)
		require.NoError(t, err)
		s.Warning = &r
	}
	if crit != "" {
		r, err := threshold.Parse(crit)
		require.NoError(t, err)
		s.Critical = &r
	}
	return s
}

func TestClassify(t *testing.T) {
	warn := mustRange(t, ":5")
	crit := mustRange(t, ":10")

	assert.Equal(t, domain.StatusOK, probe.Classify(2, warn, crit))
	assert.Equal(t, domain.StatusWarning, probe.Classify(7, warn, crit))
	assert.Equal(t, domain.StatusCritical, probe.Classify(11, warn, crit))
}

func TestClassify_AbsentRangesNeverTrigger(t *testing.T) {
	assert.Equal(t, domain.StatusOK, probe.Classify(1e9, nil, nil))
	assert.Equal(t, domain.StatusOK, probe.Classify(-1e9, nil, nil))
}

func TestClassify_CriticalWinsOverWarning(t *testing.T) {
	warn := mustRange(t, ":5")
	crit := mustRange(t, ":5")
	assert.Equal(t, domain.StatusCritical, probe.Classify(7, warn, crit))
}

func mustRange(t *testing.T, spec string) *threshold.Range {
	t.Helper()
	r, err := threshold.Parse(spec)
	require.NoError(t, err)
	return &r
}

func TestEvaluate_OK(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{shares}->{dead}", ":5", ":10", 1))

	require.Nil(t, res.Err)
	assert.Equal(t, domain.StatusOK, res.Status)
	assert.Equal(t, 2.0, res.Raw)
	assert.Equal(t, 2.0, res.Value)
	assert.Equal(t, "dead", res.Label)
	assert.Equal(t, "{shares}->{dead}", res.Path)
}

func TestEvaluate_Warning(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{shares}->{live}", ":5", ":100", 1))
	assert.Equal(t, domain.StatusWarning, res.Status)
}

func TestEvaluate_Critical(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{clients}->{connected}", ":5", ":10", 1))
	assert.Equal(t, domain.StatusCritical, res.Status)
}

func TestEvaluate_MissingValue(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{shares}->{gone}", "", "", 1))

	require.NotNil(t, res.Err)
	assert.Equal(t, domain.KindMissingValue, res.Err.Kind)
	assert.Equal(t, domain.StatusUnknown, res.Status)
}

func TestEvaluate_NotNumeric(t *testing.T) {
	for _, path := range []string{"{version}", "{shares}"} {
		res := probe.Evaluate(document(), spec(t, path, "", "", 1))
		require.NotNil(t, res.Err, "path %s", path)
		assert.Equal(t, domain.KindNotNumeric, res.Err.Kind)
		assert.Equal(t, domain.StatusUnknown, res.Status)
	}
}

func TestEvaluate_NumericString(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{stringy}", "", "", 1))
	require.Nil(t, res.Err)
	assert.Equal(t, 42.0, res.Value)
}

func TestEvaluate_DivisorScalesValue(t *testing.T) {
	res := probe.Evaluate(document(), spec(t, "{clients}->{connected}", "", "", 100))

	assert.Equal(t, 234.0, res.Raw)
	assert.Equal(t, 2.34, res.Value)
}

// TestEvaluate_DivisorLinearity checks that evaluating with divisor d
// classifies the same as evaluating the pre-divided value with divisor 1.
func TestEvaluate_DivisorLinearity(t *testing.T) {
	root := map[string]any{"raw": 700.0, "scaled": 7.0}

	withDivisor := probe.Evaluate(root, spec(t, "{raw}", ":5", ":10", 100))
	preDivided := probe.Evaluate(root, spec(t, "{scaled}", ":5", ":10", 1))

	assert.Equal(t, preDivided.Status, withDivisor.Status)
	assert.Equal(t, preDivided.Value, withDivisor.Value)
	assert.Equal(t, domain.StatusWarning, withDivisor.Status)
}

// TestEvaluateAll_SortedByPath checks that evaluation order is deterministic,
// sorted by path string, regardless of configuration order.
func TestEvaluateAll_SortedByPath(t *testing.T) {
	specs := []domain.AttributeSpec{
		spec(t, "{shares}->{live}", "", "", 1),
		spec(t, "{clients}->{connected}", "", "", 1),
		spec(t, "{shares}->{dead}", "", "", 1),
	}

	results := probe.EvaluateAll(document(), specs)
	require.Len(t, results, 3)
	assert.Equal(t, "{clients}->{connected}", results[0].Path)
	assert.Equal(t, "{shares}->{dead}", results[1].Path)
	assert.Equal(t, "{shares}->{live}", results[2].Path)
}

func TestAggregate_WorstWins(t *testing.T) {
	ok := domain.AttributeResult{Status: domain.StatusOK}
	warn := domain.AttributeResult{Status: domain.StatusWarning}
	crit := domain.AttributeResult{Status: domain.StatusCritical}
	unknown := domain.AttributeResult{Status: domain.StatusUnknown}

	assert.Equal(t, domain.StatusOK, probe.Aggregate([]domain.AttributeResult{ok, ok}))
	assert.Equal(t, domain.StatusWarning, probe.Aggregate([]domain.AttributeResult{ok, warn}))
	assert.Equal(t, domain.StatusCritical, probe.Aggregate([]domain.AttributeResult{warn, crit, ok}))
	assert.Equal(t, domain.StatusUnknown, probe.Aggregate([]domain.AttributeResult{crit, unknown}))
}

// TestAggregate_Commutative checks that order does not affect the outcome.
func TestAggregate_Commutative(t *testing.T) {
	a := domain.AttributeResult{Status: domain.StatusWarning}
	b := domain.AttributeResult{Status: domain.StatusCritical}

	assert.Equal(t,
		probe.Aggregate([]domain.AttributeResult{a, b}),
		probe.Aggregate([]domain.AttributeResult{b, a}))
}

func TestAggregate_EmptyIsUnknown(t *testing.T) {
	assert.Equal(t, domain.StatusUnknown, probe.Aggregate(nil))
}

// TestAggregate_EvaluationFailureForcesUnknown checks that a single failed
// attribute forces overall UNKNOWN even when another attribute is CRITICAL.
func TestAggregate_EvaluationFailureForcesUnknown(t *testing.T) {
	specs := []domain.AttributeSpec{
		spec(t, "{clients}->{connected}", ":5", ":10", 1), // critical
		spec(t, "{missing}", "", "", 1),                   // unknown
	}

	results := probe.EvaluateAll(document(), specs)
	assert.Equal(t, domain.StatusUnknown, probe.Aggregate(results))
}

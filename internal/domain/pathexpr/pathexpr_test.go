package pathexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yifangd/check-json/internal/domain/pathexpr"
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
		"dmb:connections": map[string]any{
			"active": 7,
		},
		"nodes": []any{
			map[string]any{"name": "a", "load": 0.5},
			map[string]any{"name": "b", "load": 0.9},
		},
		"uptime": 86400,
	}
}

func TestParse_Steps(t *testing.T) {
	expr, err := pathexpr.Parse("{shares}->{dead}")
	require.NoError(t, err)

	steps := expr.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "shares", steps[0].Key)
	assert.Equal(t, "dead", steps[1].Key)
	assert.Equal(t, "{shares}->{dead}", expr.String())
	assert.Equal(t, "dead", expr.LastToken())
}

func TestParse_IndexSteps(t *testing.T) {
	expr, err := pathexpr.Parse("{nodes}->[1]->{load}")
	require.NoError(t, err)

	steps := expr.Steps()
	require.Len(t, steps, 3)
	assert.True(t, steps[1].IsIndex)
	assert.Equal(t, 1, steps[1].Index)
	assert.Equal(t, "load", expr.LastToken())
}

// TestParse_OpaqueKeys checks that namespace-qualified keys keep their
// internal punctuation: {dmb:connections} is one key, not two tokens.
func TestParse_OpaqueKeys(t *testing.T) {
	expr, err := pathexpr.Parse("{dmb:connections}->{active}")
	require.NoError(t, err)

	steps := expr.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, "dmb:connections", steps[0].Key)
}

func TestParse_SeparatorOptional(t *testing.T) {
	withSep, err := pathexpr.Parse("{shares}->{dead}")
	require.NoError(t, err)
	withoutSep, err := pathexpr.Parse("{shares}{dead}")
	require.NoError(t, err)

	assert.Equal(t, withSep.Steps(), withoutSep.Steps())
}

func TestParse_Malformed(t *testing.T) {
	exprs := []string{
		"",
		"   ",
		"{shares",
		"[x]",
		"[-1]",
		"[1",
		"shares",
		"{a}->",
		"{a}>>{b}",
	}

	for _, raw := range exprs {
		t.Run(raw, func(t *testing.T) {
			_, err := pathexpr.Parse(raw)
			assert.Error(t, err, "expression %q should be rejected", raw)
		})
	}
}

func TestResolve(t *testing.T) {
	root := document()

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"{shares}->{dead}", 2, true},
		{"{shares}->{live}", 12, true},
		{"{clients}->{connected}", 234, true},
		{"{dmb:connections}->{active}", 7, true},
		{"{nodes}->[0]->{name}", "a", true},
		{"{nodes}->[1]->{load}", 0.9, true},
		{"{uptime}", 86400, true},
		{"{shares}", map[string]any{"dead": 2, "live": 12}, true},
		{"{missing}", nil, false},
		{"{shares}->{missing}", nil, false},
		{"{nodes}->[5]", nil, false},
		// Descending into a scalar is not-found, not a coercion.
		{"{uptime}->{seconds}", nil, false},
		{"{uptime}->[0]", nil, false},
		{"{nodes}->{name}", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			expr, err := pathexpr.Parse(tt.path)
			require.NoError(t, err)

			got, found := pathexpr.Resolve(root, expr)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// TestResolve_Repeatable checks that resolution is pure: the same path
// against the same tree always yields the same result.
func TestResolve_Repeatable(t *testing.T) {
	root := document()
	expr, err := pathexpr.Parse("{nodes}->[0]->{load}")
	require.NoError(t, err)

	first, foundFirst := pathexpr.Resolve(root, expr)
	second, foundSecond := pathexpr.Resolve(root, expr)
	assert.Equal(t, foundFirst, foundSecond)
	assert.Equal(t, first, second)
}

func TestKey(t *testing.T) {
	expr := pathexpr.Key("dmb:connections")
	assert.Equal(t, "{dmb:connections}", expr.String())
	assert.Equal(t, "dmb:connections", expr.LastToken())

	got, found := pathexpr.Resolve(document(), expr)
	assert.True(t, found)
	assert.NotNil(t, got)
}

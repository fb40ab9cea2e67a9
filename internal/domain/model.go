package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yifangd/check-json/internal/domain/pathexpr"
	"github.com/yifangd/check-json/internal/domain/threshold"
)

// Status is a Nagios check severity. Higher values are worse.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int { return int(s) }

// MarshalJSON renders the status as its Nagios word.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Worst returns the worse of two statuses.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// AttributeSpec is one configured attribute: a path to resolve, its
// warning/critical ranges (nil when not configured), and a unit divisor.
// Built once at startup, immutable thereafter.
type AttributeSpec struct {
	Path     pathexpr.Expression
	Warning  *threshold.Range
	Critical *threshold.Range
	Divisor  float64
}

// Label returns the attribute's display label: the final path step as
// written, original case preserved.
func (s AttributeSpec) Label() string { return s.Path.LastToken() }

// AttributeResult is the outcome of evaluating one attribute. Err is set for
// MissingValue/NotNumeric failures, in which case Status is UNKNOWN and the
// values are zero.
type AttributeResult struct {
	Spec   AttributeSpec `json:"-"`
	Path   string        `json:"path"`
	Label  string        `json:"label"`
	Raw    float64       `json:"raw"`
	Value  float64       `json:"value"`
	Status Status        `json:"status"`
	Err    *CheckError   `json:"error,omitempty"`
}

// PerfMetric is one machine-readable perfdata token.
type PerfMetric struct {
	Label    string
	Value    float64
	Warning  *threshold.Range
	Critical *threshold.Range
}

// Token renders the metric as label=value[;warn[;crit]].
func (m PerfMetric) Token() string {
	var b strings.Builder
	b.WriteString(m.Label)
	b.WriteString("=")
	b.WriteString(FormatNumber(m.Value))
	if m.Warning != nil || m.Critical != nil {
		b.WriteString(";")
		if m.Warning != nil {
			b.WriteString(m.Warning.String())
		}
		b.WriteString(";")
		if m.Critical != nil {
			b.WriteString(m.Critical.String())
		}
	}
	return b.String()
}

// CheckReport is the final outcome of a probe run.
type CheckReport struct {
	Status   Status            `json:"status"`
	Message  string            `json:"message"`
	Perfdata string            `json:"perfdata,omitempty"`
	Results  []AttributeResult `json:"results,omitempty"`
}

// Line renders the single-line plugin output:
// "<STATUS> - <message> | <perfdata>", the perfdata section omitted if empty.
func (r CheckReport) Line() string {
	line := r.Status.String() + " - " + r.Message
	if r.Perfdata != "" {
		line += " | " + r.Perfdata
	}
	return line
}

// NumericValue coerces a resolved document node to a number. Integers,
// floats, and numeric strings coerce; bools, maps, and sequences do not.
func NumericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatNumber renders a value without a trailing ".0" for whole numbers.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SanitizeLabel builds a perfdata label: every character outside
// [A-Za-z0-9_-] is stripped and the rest is lower-cased.
func SanitizeLabel(label string) string {
	var b strings.Builder
	for _, c := range label {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteRune(c)
		case c >= 'A' && c <= 'Z':
			b.WriteRune(c + ('a' - 'A'))
		}
	}
	return b.String()
}

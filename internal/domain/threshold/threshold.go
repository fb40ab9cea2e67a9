// Package threshold implements the Nagios threshold range grammar used to
// classify probe values as OK, WARNING, or CRITICAL.
package threshold

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range is a numeric interval plus an inversion flag. A non-inverted range
// alarms when the value falls outside [Lower, Upper]; an inverted range
// alarms when the value falls inside it. Unbounded sides are ±Inf.
type Range struct {
	Inverted bool
	Lower    float64
	Upper    float64
}

// Default is the range produced by an empty spec: [0, +Inf), so only
// negative values alarm.
func Default() Range {
	return Range{Lower: 0, Upper: math.Inf(1)}
}

// Parse parses a range spec string:
//
//	""       -> [0, +Inf)
//	"10"     -> [0, 10]
//	"10:"    -> [10, +Inf)
//	":10"    -> (-Inf, 10]
//	"~:10"   -> (-Inf, 10]
//	"5:10"   -> [5, 10]
//	"@5:10"  -> alarm inside [5, 10]
func Parse(spec string) (Range, error) {
	r := Default()

	s := strings.TrimSpace(spec)
	if s == "" {
		return r, nil
	}

	if strings.HasPrefix(s, "@") {
		r.Inverted = true
		s = s[1:]
		if s == "" {
			return Range{}, fmt.Errorf("invalid range %q: nothing follows the inversion marker", spec)
		}
	}
	if strings.Contains(s, "@") {
		return Range{}, fmt.Errorf("invalid range %q: @ is only allowed as a prefix", spec)
	}

	lo, hi, hasColon := strings.Cut(s, ":")
	if !hasColon {
		// Bare number N is shorthand for 0:N.
		lo, hi = "0", s
	}

	switch lo {
	case "", "~":
		r.Lower = math.Inf(-1)
	default:
		lower, err := parseBound(lo, spec)
		if err != nil {
			return Range{}, err
		}
		r.Lower = lower
	}

	if hi == "" {
		r.Upper = math.Inf(1)
	} else {
		upper, err := parseBound(hi, spec)
		if err != nil {
			return Range{}, err
		}
		r.Upper = upper
	}

	if r.Lower > r.Upper {
		return Range{}, fmt.Errorf("invalid range %q: start %v is greater than end %v", spec, r.Lower, r.Upper)
	}

	return r, nil
}

func parseBound(s, spec string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid range %q: %q is not a number", spec, s)
	}
	return v, nil
}

// Alarms reports whether value falls in the alarm region of the range.
func (r Range) Alarms(value float64) bool {
	outside := value < r.Lower || value > r.Upper
	if r.Inverted {
		return !outside
	}
	return outside
}

// String renders the range in the compact perfdata form: the zero/unbounded
// lower side is omitted, so [0, 5] and (-Inf, 5] both render as "5".
func (r Range) String() string {
	var b strings.Builder
	if r.Inverted {
		b.WriteString("@")
	}

	lower := ""
	if !math.IsInf(r.Lower, -1) && r.Lower != 0 {
		lower = formatBound(r.Lower)
	}
	upper := ""
	if !math.IsInf(r.Upper, 1) {
		upper = formatBound(r.Upper)
	}

	switch {
	case lower == "" && upper == "":
		// Default range renders empty.
	case lower == "":
		b.WriteString(upper)
	case upper == "":
		b.WriteString(lower)
		b.WriteString(":")
	default:
		b.WriteString(lower)
		b.WriteString(":")
		b.WriteString(upper)
	}
	return b.String()
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

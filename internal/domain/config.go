package domain

import (
	"strconv"
	"time"

	"github.com/yifangd/check-json/internal/domain/pathexpr"
	"github.com/yifangd/check-json/internal/domain/threshold"
)

const (
	// DefaultTimeout bounds the whole fetch step.
	DefaultTimeout = 15 * time.Second

	// DefaultContentType is the expected response content type.
	DefaultContentType = "application/json"

	// Wildcard, given as a perfvars/outputvars entry, expands to every
	// top-level key of the document in sorted key order.
	Wildcard = "*"
)

// ProbeConfig is the raw configuration surface of one probe run, as
// collected from flags and/or a check-definition file. Warning, Critical,
// and Divisor pair positionally with Attributes.
type ProbeConfig struct {
	URL         string
	Attributes  []string
	Warning     []string
	Critical    []string
	Divisor     []string
	Perfvars    []string
	Outputvars  []string
	Timeout     time.Duration
	Metadata    string
	ContentType string
	IgnoreSSL   bool
}

// CheckDefinition mirrors ProbeConfig as a YAML check file. Threshold and
// divisor entries are strings, exactly as they would be written on the
// command line.
type CheckDefinition struct {
	URL         string   `yaml:"url"`
	Attributes  []string `yaml:"attributes"`
	Warning     []string `yaml:"warning"`
	Critical    []string `yaml:"critical"`
	Divisor     []string `yaml:"divisor"`
	Perfvars    []string `yaml:"perfvars"`
	Outputvars  []string `yaml:"outputvars"`
	Timeout     int      `yaml:"timeout"`
	Metadata    string   `yaml:"metadata"`
	ContentType string   `yaml:"contenttype"`
	IgnoreSSL   bool     `yaml:"ignoressl"`
}

// ApplyDefinition fills fields the caller left unset from a check
// definition. Explicit flag values always win over file values.
func (c *ProbeConfig) ApplyDefinition(d CheckDefinition) {
	if c.URL == "" {
		c.URL = d.URL
	}
	if len(c.Attributes) == 0 {
		c.Attributes = d.Attributes
	}
	if len(c.Warning) == 0 {
		c.Warning = d.Warning
	}
	if len(c.Critical) == 0 {
		c.Critical = d.Critical
	}
	if len(c.Divisor) == 0 {
		c.Divisor = d.Divisor
	}
	if len(c.Perfvars) == 0 {
		c.Perfvars = d.Perfvars
	}
	if len(c.Outputvars) == 0 {
		c.Outputvars = d.Outputvars
	}
	if c.Timeout == 0 && d.Timeout > 0 {
		c.Timeout = time.Duration(d.Timeout) * time.Second
	}
	if c.Metadata == "" {
		c.Metadata = d.Metadata
	}
	if c.ContentType == "" {
		c.ContentType = d.ContentType
	}
	if !c.IgnoreSSL {
		c.IgnoreSSL = d.IgnoreSSL
	}
}

// ApplyDefaults fills the remaining zero fields with defaults.
func (c *ProbeConfig) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.ContentType == "" {
		c.ContentType = DefaultContentType
	}
}

// FieldList is a compiled perfvars or outputvars list.
type FieldList struct {
	Wildcard bool
	Paths    []pathexpr.Expression
}

// CompiledCheck is the validated, parsed form of a ProbeConfig. Building it
// is the fail-fast step: every configuration error surfaces here, before
// any network call.
type CompiledCheck struct {
	Specs  []AttributeSpec
	Perf   FieldList
	Output FieldList
}

// Compile validates the configuration and parses every path expression,
// threshold range, and divisor. Any problem is a KindConfig CheckError.
func (c ProbeConfig) Compile() (CompiledCheck, error) {
	var compiled CompiledCheck

	if c.URL == "" {
		return compiled, NewConfigError("url is required")
	}
	if len(c.Attributes) == 0 {
		return compiled, NewConfigError("at least one attribute is required")
	}
	if len(c.Warning) > len(c.Attributes) {
		return compiled, NewConfigError("%d warning ranges for %d attributes", len(c.Warning), len(c.Attributes))
	}
	if len(c.Critical) > len(c.Attributes) {
		return compiled, NewConfigError("%d critical ranges for %d attributes", len(c.Critical), len(c.Attributes))
	}
	if len(c.Divisor) > len(c.Attributes) {
		return compiled, NewConfigError("%d divisors for %d attributes", len(c.Divisor), len(c.Attributes))
	}
	if c.Timeout < 0 {
		return compiled, NewConfigError("timeout must not be negative")
	}

	for i, attr := range c.Attributes {
		expr, err := pathexpr.Parse(attr)
		if err != nil {
			return compiled, NewConfigError("attribute %d: %v", i+1, err)
		}

		spec := AttributeSpec{Path: expr, Divisor: 1}

		if i < len(c.Warning) {
			r, err := threshold.Parse(c.Warning[i])
			if err != nil {
				return compiled, NewConfigError("warning %d: %v", i+1, err)
			}
			spec.Warning = &r
		}
		if i < len(c.Critical) {
			r, err := threshold.Parse(c.Critical[i])
			if err != nil {
				return compiled, NewConfigError("critical %d: %v", i+1, err)
			}
			spec.Critical = &r
		}
		if i < len(c.Divisor) && c.Divisor[i] != "" {
			d, err := strconv.ParseFloat(c.Divisor[i], 64)
			if err != nil {
				return compiled, NewConfigError("divisor %d: %q is not a number", i+1, c.Divisor[i])
			}
			if d == 0 {
				return compiled, NewConfigError("divisor %d: must not be zero", i+1)
			}
			spec.Divisor = d
		}

		compiled.Specs = append(compiled.Specs, spec)
	}

	var err error
	if compiled.Perf, err = compileFields(c.Perfvars, "perfvars"); err != nil {
		return compiled, err
	}
	if compiled.Output, err = compileFields(c.Outputvars, "outputvars"); err != nil {
		return compiled, err
	}

	return compiled, nil
}

func compileFields(entries []string, name string) (FieldList, error) {
	var fl FieldList
	for i, entry := range entries {
		if entry == Wildcard {
			fl.Wildcard = true
			continue
		}
		expr, err := pathexpr.Parse(entry)
		if err != nil {
			return fl, NewConfigError("%s %d: %v", name, i+1, err)
		}
		fl.Paths = append(fl.Paths, expr)
	}
	return fl, nil
}

package domain

import "fmt"

// ErrorKind classifies a check failure. Each kind maps to a fixed Nagios
// status so the exit code never depends on incidental error text.
type ErrorKind int

const (
	// KindConfig is a bad range spec, zero divisor, mismatched list counts,
	// or a malformed path expression. Detected before any network call.
	KindConfig ErrorKind = iota
	// KindFetch is a network, TLS, timeout, or HTTP-level failure.
	KindFetch
	// KindContentType means the server answered, but not with the expected
	// representation.
	KindContentType
	// KindParse is a malformed document body.
	KindParse
	// KindMissingValue means an attribute path did not resolve.
	KindMissingValue
	// KindNotNumeric means an attribute path resolved to a non-numeric node.
	KindNotNumeric
)

// CheckError is a classified probe failure.
type CheckError struct {
	Kind ErrorKind
	Path string // attribute path, set for per-attribute failures
	Msg  string
	Err  error
}

func (e *CheckError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *CheckError) Unwrap() error { return e.Err }

// Status returns the Nagios status the error maps to.
func (e *CheckError) Status() Status {
	if e.Kind == KindFetch {
		return StatusCritical
	}
	return StatusUnknown
}

// MarshalJSON renders the error as its message string, so structured
// consumers see text rather than an empty object.
func (e *CheckError) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", e.Error())), nil
}

func NewConfigError(format string, args ...any) *CheckError {
	return &CheckError{Kind: KindConfig, Msg: fmt.Sprintf(format, args...)}
}

func NewFetchError(err error) *CheckError {
	return &CheckError{Kind: KindFetch, Err: err}
}

func NewContentTypeError(got, want string) *CheckError {
	return &CheckError{
		Kind: KindContentType,
		Msg:  fmt.Sprintf("unexpected content type %q, want %q", got, want),
	}
}

func NewParseError(err error) *CheckError {
	return &CheckError{Kind: KindParse, Msg: "parsing document: " + err.Error(), Err: err}
}

func NewMissingValueError(path string) *CheckError {
	return &CheckError{Kind: KindMissingValue, Path: path, Msg: "value not found"}
}

func NewNotNumericError(path string) *CheckError {
	return &CheckError{Kind: KindNotNumeric, Path: path, Msg: "value is not numeric"}
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrMissingInput       = errors.New("missing input")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDecodeFailure      = errors.New("decode failure")
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrInvalidFont        = errors.New("invalid font")
	ErrInvalidConfig      = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindMissingInput       ErrorKind = "missing_input"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindDecodeFailure      ErrorKind = "decode_failure"
	KindDegenerateGeometry ErrorKind = "degenerate_geometry"
	KindInvalidFont        ErrorKind = "invalid_font"
	KindInvalidConfig      ErrorKind = "invalid_config"
	KindInternal           ErrorKind = "internal"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel for its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinelFor(e.Kind) == target
}

// NewError builds an OpError. Err may be nil, in which case the sentinel for
// the kind is used so the message stays meaningful.
func NewError(op string, kind ErrorKind, err error) *OpError {
	if err == nil {
		err = sentinelFor(kind)
	}
	return &OpError{Op: op, Kind: kind, Err: err}
}

// Errorf is NewError with a formatted cause.
func Errorf(op string, kind ErrorKind, format string, args ...any) *OpError {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// IsKind helps callers classify errors without depending on the producing package.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf reports the kind of the outermost OpError in err's chain,
// or KindInternal when there is none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindInternal
}

// Message returns the innermost human readable cause, without the op/kind prefix
// that OpError adds. It is what the HTTP surface shows to clients.
func Message(err error) string {
	var oe *OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return Message(oe.Err)
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func sentinelFor(kind ErrorKind) error {
	switch kind {
	case KindMissingInput:
		return ErrMissingInput
	case KindInvalidInput:
		return ErrInvalidInput
	case KindDecodeFailure:
		return ErrDecodeFailure
	case KindDegenerateGeometry:
		return ErrDegenerateGeometry
	case KindInvalidFont:
		return ErrInvalidFont
	case KindInvalidConfig:
		return ErrInvalidConfig
	}
	return nil
}

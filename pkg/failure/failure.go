// Package failure defines the error taxonomy shared by the contract gates.
//
// Every failure is terminal for the invoking command. A failure carries a
// Kind (what went wrong), a stable reason Code (which check tripped) and,
// for consistency failures, the two values that disagreed.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// MissingInput: a required file is absent.
	MissingInput Kind = iota + 1
	// Format: an expected pattern is not present in an existing file.
	Format
	// Consistency: two derived values that must be equal are not.
	Consistency
	// MalformedValue: a value failed grammar validation.
	MalformedValue
	// UpstreamTool: an external transformation failed.
	UpstreamTool
)

func (k Kind) String() string {
	switch k {
	case MissingInput:
		return "missing input"
	case Format:
		return "format"
	case Consistency:
		return "consistency"
	case MalformedValue:
		return "malformed value"
	case UpstreamTool:
		return "upstream tool"
	default:
		return "unknown"
	}
}

// Error implements error so a Kind can be used as an errors.Is target:
//
//	errors.Is(err, failure.Consistency)
func (k Kind) Error() string { return k.String() + " error" }

// Value is one named value reported alongside a failure.
type Value struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Error is a classified pipeline failure.
type Error struct {
	Kind    Kind    `json:"-"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Hint    string  `json:"hint,omitempty"`
	Values  []Value `json:"values,omitempty"`
	Err     error   `json:"-"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, v := range e.Values {
		fmt.Fprintf(&b, " (%s: %s)", v.Name, v.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches a bare Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New returns a failure of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Wrap returns a failure of the given kind wrapping cause.
func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: cause}
}

// WithHint sets the operator hint.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithValue appends a reported value.
func (e *Error) WithValue(name, value string) *Error {
	e.Values = append(e.Values, Value{Name: name, Value: value})
	return e
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// CodeOf returns the reason code of err, or ReasonInternal when err is not
// a classified failure.
func CodeOf(err error) string {
	if fe, ok := As(err); ok {
		return fe.Code
	}
	return ReasonInternal
}

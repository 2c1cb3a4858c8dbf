package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Attribute keys carried by errors that refer to a source position or a
// variable name.
const (
	positionKey = "position"
	nameKey     = "name"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidCharacter        = NewError("invalid character")
	ErrUnmatchedClosingBracket = NewError("unmatched closing bracket")
	ErrUnmatchedOpeningBracket = NewError("unmatched opening bracket")
	ErrMissingOperand          = NewError("missing operand")
	ErrDivisionByZero          = NewError("division by zero")
	ErrNegativeFactorial       = NewError("factorial of negative number")
	ErrNonIntegerFactorial     = NewError("factorial of non-integer number")
	ErrNegativeSqrt            = NewError("sqrt of negative number")
	ErrUnknownFunction         = NewError("unknown function")
	ErrUnboundVariable         = NewError("unbound variable")
	ErrMalformedPostfix        = NewError("malformed postfix expression")
	ErrReadInput               = NewError("failed to read input")
	ErrInvalidFormat           = NewError("invalid output format")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.With] or [Error.Wrap] keep the
// sentinel's identity, so errors.Is(err, ErrDivisionByZero) holds for any
// refinement of ErrDivisionByZero.
type Error struct {
	kind  *Error
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> <detail>: <err>"
	//   2. "<msg> <detail>"
	//   3. "<err>"
	//   4. ""
	part := make([]string, 0, 2)

	if e.msg != "" {
		msg := e.msg

		if name, ok := e.Name(); ok {
			msg += " " + strconv.Quote(name)
		}

		if pos, ok := e.Position(); ok {
			msg += " at position " + strconv.Itoa(pos)
		}

		part = append(part, msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error derived from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	return e.kind != nil && e.kind == t.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// at returns a copy of e reporting the given source position.
func (e *Error) at(pos int) *Error { return e.With(slog.Int(positionKey, pos)) }

// named returns a copy of e reporting the given variable or function name.
func (e *Error) named(name string) *Error { return e.With(slog.String(nameKey, name)) }

// Position returns the byte offset reported by a validation error.
//
// For [ErrUnmatchedOpeningBracket] the value is one less than the number of
// unclosed brackets rather than a source offset.
func (e *Error) Position() (int, bool) {
	for _, a := range e.attrs {
		if a.Key == positionKey && a.Value.Kind() == slog.KindInt64 {
			return int(a.Value.Int64()), true
		}
	}

	return 0, false
}

// Name returns the variable or function name reported by the error.
func (e *Error) Name() (string, bool) {
	for _, a := range e.attrs {
		if a.Key == nameKey && a.Value.Kind() == slog.KindString {
			return a.Value.String(), true
		}
	}

	return "", false
}

// Caret renders src with a marker under the position reported by the error.
// It returns the empty string if the error carries no position.
//
//	  1 + 2 & 3
//	        ^
func (e *Error) Caret(src string) string {
	pos, ok := e.Position()
	if !ok {
		return ""
	}

	pos = max(0, min(pos, len(src)))

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(src)
	buf.WriteByte('\n')
	buf.WriteString("  ")
	buf.WriteString(strings.Repeat(" ", pos))
	buf.WriteString("^\n")

	return buf.String()
}

// IsValidation reports whether err was raised while validating source text,
// in which case it carries a position.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCharacter) ||
		errors.Is(err, ErrUnmatchedClosingBracket) ||
		errors.Is(err, ErrUnmatchedOpeningBracket)
}

// IsBinding reports whether err names a variable without a value, in which
// case it carries a name.
func IsBinding(err error) bool {
	return errors.Is(err, ErrMissingOperand) || errors.Is(err, ErrUnboundVariable)
}

// AsError returns err as an *Error if it is one or wraps one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

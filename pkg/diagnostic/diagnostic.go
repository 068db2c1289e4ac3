// Package diagnostic implements the value-type, arena-free diagnostic
// model shared by every component of the compilation spine (lexer,
// parser, regex sub-parser, semantic builder). It generalizes the single
// structured-error shape gosonata's pkg/types/errors.go uses for JSONata
// errors: a stable code, a message, a position, and an optional wrapped
// cause.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/sandrolain/ecmatool/pkg/span"
)

// Severity classifies how a Diagnostic should affect the consumer.
type Severity uint8

const (
	// SeverityAdvice is a stylistic suggestion; never affects AST shape.
	SeverityAdvice Severity = iota
	// SeverityWarning flags a likely mistake that does not block parsing.
	SeverityWarning
	// SeverityError is a recoverable failure: the producing component
	// substitutes a best-effort result and continues.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityAdvice:
		return "advice"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Code is a stable, namespaced diagnostic code. The namespace prefix
// identifies which error taxonomy kind produced it:
//
//	S0xxx  syntactic (lexer/parser)
//	B0xxx  early-semantic (binder/scope)
//	R0xxx  regex sub-parser
//	A1xxx  resource (arena/offset limits)
//	I9xxx  internal invariant breach
type Code string

const (
	CodeUnterminatedString   Code = "S0101"
	CodeNumberOutOfRange     Code = "S0102"
	CodeUnsupportedEscape    Code = "S0103"
	CodeUnexpectedEOF        Code = "S0104"
	CodeUnterminatedComment  Code = "S0106"
	CodeUnexpectedToken      Code = "S0201"
	CodeExpectedToken        Code = "S0202"
	CodeExpectedKeyword      Code = "S0203"
	CodeIrregularWhitespace  Code = "S0301"
	CodeInvalidNumericLiteral Code = "S0302"

	CodeDuplicateBinding      Code = "B0001"
	CodeRedeclaration         Code = "B0002"
	CodeUndeclaredVariable    Code = "B0003"
	CodeIllegalReturn         Code = "B0004"
	CodeIllegalSuper          Code = "B0005"
	CodeIllegalStrictOctal    Code = "B0006"
	CodeDuplicateParameter    Code = "B0007"

	CodeRegexEmptyPattern        Code = "R0301"
	CodeRegexUnterminated        Code = "R0302"
	CodeRegexInvalidUnicodeProp  Code = "R0303"
	CodeRegexUnicodeEscapeTooBig Code = "R0304"
	CodeRegexInvalidBackref      Code = "R0305"
	CodeRegexClassSetMixedTypes  Code = "R0306"

	CodeArenaOutOfMemory  Code = "A1001"
	CodeOffsetOverflow    Code = "A1002"
	CodeSourceTooLarge    Code = "A1003"

	CodeInternalInvariant Code = "I9001"
)

// Label attaches a short message to a secondary span, e.g. "previous
// declaration here" on a redeclaration diagnostic.
type Label struct {
	Span    span.Span
	Message string
}

// Diagnostic is the value-type, serialisable diagnostic record that flows
// upward from every component into a per-program Sink. It never aborts
// parsing; it is purely descriptive.
type Diagnostic struct {
	Severity     Severity
	Code         Code
	Message      string
	PrimarySpan  span.Span
	Labels       []Label
	Help         string
	Related      []Diagnostic
	cause        error
}

// New creates a new Diagnostic. Mirrors gosonata's NewError(code,
// message, position) constructor shape, widened with severity and span.
func New(severity Severity, code Code, message string, primary span.Span) *Diagnostic {
	return &Diagnostic{
		Severity:    severity,
		Code:        code,
		Message:     message,
		PrimarySpan: primary,
	}
}

// Errorf is a convenience constructor for SeverityError diagnostics with a
// formatted message.
func Errorf(code Code, primary span.Span, format string, args ...any) *Diagnostic {
	return New(SeverityError, code, fmt.Sprintf(format, args...), primary)
}

// WithLabel appends a labelled secondary span and returns the receiver for
// chaining, matching gosonata's WithToken/WithCause fluent style.
func (d *Diagnostic) WithLabel(s span.Span, message string) *Diagnostic {
	d.Labels = append(d.Labels, Label{Span: s, Message: message})
	return d
}

// WithHelp attaches a help string.
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// WithCause wraps an underlying error, mirroring types.Error.WithCause.
func (d *Diagnostic) WithCause(err error) *Diagnostic {
	d.cause = err
	return d
}

// Unwrap returns the wrapped cause, if any.
func (d *Diagnostic) Unwrap() error {
	return d.cause
}

// Error implements the error interface so a Diagnostic can be returned
// from functions with a conventional Go error return (used for the fatal
// Resource/Internal kinds, which return plain errors rather than being
// pushed onto a Sink).
func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] at %s: %s", d.Severity, d.Code, d.PrimarySpan, d.Message)
	if d.Help != "" {
		fmt.Fprintf(&b, " (help: %s)", d.Help)
	}
	return b.String()
}

// Snippet renders the offending source text for the primary span, used by
// consumers that want to show the offending snippet alongside the
// message.
func (d *Diagnostic) Snippet(source string) string {
	start, end := d.PrimarySpan.Start, d.PrimarySpan.End
	if int(end) > len(source) {
		end = uint32(len(source))
	}
	if int(start) > len(source) {
		return ""
	}
	return source[start:end]
}

// Sink accumulates diagnostics produced during a single program's
// compilation. It is per-program, never shared across arenas.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Push appends a diagnostic to the sink.
func (s *Sink) Push(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Errorf pushes a new SeverityError diagnostic built from a format string.
func (s *Sink) Errorf(code Code, primary span.Span, format string, args ...any) {
	s.Push(*Errorf(code, primary, format, args...))
}

// All returns every diagnostic pushed so far, in the order they were
// reported. Components report in source order, so this is also the order
// a caller should render them in.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// HasErrors reports whether any SeverityError diagnostic was reported.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics accumulated.
func (s *Sink) Len() int {
	return len(s.diagnostics)
}

// FatalError is the error value for the Resource and Internal error
// kinds, which abort a pass instead of degrading to a diagnostic. Its
// only constructor call is pkg/arena's pool-id exhaustion helper;
// pkg/parser's Parse has no error result, so no parse is aborted with a
// FatalError, and an oversized source or malformed UTF-8 is not
// reported as one.
type FatalError struct {
	Code    Code
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal [%s]: %s", e.Code, e.Message)
}

// NewFatal constructs a FatalError.
func NewFatal(code Code, message string) *FatalError {
	return &FatalError{Code: code, Message: message}
}

// Package diag collects positioned diagnostics produced while lexing,
// parsing and evaluating a Cirno program.
//
// Diagnostics are never Go errors: the lexer, parser and evaluator all
// follow the source language's own propagation policy of "emit and keep
// going at this level, unwind one level", so a *Diagnostic is a value collected into a
// *List, not something callers wrap with github.com/pkg/errors. Only
// host-facing failures (file I/O, include resolution) use pkg/errors.
package diag

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	// Warning diagnostics do not stop compilation (e.g. an unrecognized
	// byte skipped by the lexer).
	Warning Severity = iota
	// Error diagnostics set the list's Failed flag.
	Error
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single positioned message.
type Diagnostic struct {
	Path     string
	Line     int
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%s: %s", d.Path, d.Line, d.Severity, d.Message)
}

// List accumulates diagnostics for one compilation (lex+parse) or one
// evaluator run. Once any Error-severity diagnostic has been added,
// Failed returns true and the caller (parser or evaluator) should stop
// making forward progress that depends on a clean tree or clean scope.
type List struct {
	items  []Diagnostic
	failed bool
}

// Add appends a diagnostic at the given severity, formatting Message with
// fmt.Sprintf(format, args...).
func (l *List) Add(path string, line int, sev Severity, format string, args ...interface{}) {
	l.items = append(l.items, Diagnostic{
		Path:     path,
		Line:     line,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
	if sev == Error {
		l.failed = true
	}
}

// Errorf records an Error-severity diagnostic.
func (l *List) Errorf(path string, line int, format string, args ...interface{}) {
	l.Add(path, line, Error, format, args...)
}

// Warnf records a Warning-severity diagnostic.
func (l *List) Warnf(path string, line int, format string, args ...interface{}) {
	l.Add(path, line, Warning, format, args...)
}

// Failed reports whether any Error-severity diagnostic was recorded.
func (l *List) Failed() bool { return l.failed }

// Items returns the diagnostics recorded so far, in emission order.
func (l *List) Items() []Diagnostic { return l.items }

// Reset clears the list for reuse.
func (l *List) Reset() {
	l.items = nil
	l.failed = false
}

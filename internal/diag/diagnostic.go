package diag

import (
	"errors"
	"fmt"

	"splice/internal/source"
)

// Error is a fatal condition detected while scanning, loading or resolving.
// Pos refers to the line sequence the failing operation was working on; File
// names it when known ("" for standard input).
type Error struct {
	Code Code
	File string
	Pos  source.Pos
	Msg  string
	// HasPos is false for errors that are not tied to a source position
	// (missing files, missing namespace marker at end of input).
	HasPos bool
	// Subject is quoted after the title in the headline, e.g. the file that
	// could not be read.
	Subject string
}

// Errorf creates a positioned error.
func Errorf(code Code, pos source.Pos, format string, args ...any) *Error {
	return &Error{
		Code:   code,
		Pos:    pos,
		Msg:    fmt.Sprintf(format, args...),
		HasPos: true,
	}
}

// Newf creates an error without a source position.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Unreadable reports a file that could not be read.
func Unreadable(path string) *Error {
	e := Newf(IOUnreadable, "could not read file %q", path)
	e.Subject = path
	return e
}

// Headline is the one-line summary: the code title, plus the quoted subject
// when there is one.
func (e *Error) Headline() string {
	if e.Subject == "" {
		return e.Code.Title() + "."
	}
	return fmt.Sprintf("%s %q.", e.Code.Title(), e.Subject)
}

func (e *Error) Error() string {
	loc := e.File
	if e.HasPos {
		lc := e.Pos.LineCol()
		if loc == "" {
			loc = "<stdin>"
		}
		loc = fmt.Sprintf("%s:%d:%d", loc, lc.Line, lc.Col)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Code.ID(), e.Msg)
}

// InFile returns a copy of e attributed to path.
func (e *Error) InFile(path string) *Error {
	if e == nil {
		return nil
	}
	cp := *e
	cp.File = path
	return &cp
}

// As unwraps err to an *Error.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ExitCode maps any error to a process status: 0 for nil, the category
// status for *Error, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if de, ok := As(err); ok {
		return de.Code.Category().ExitCode()
	}
	return 1
}

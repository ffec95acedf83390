package prettylisp

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of lexing, parsing and evaluation.
// All of them are fatal for the current top-level statement.
type ErrorKind int8

const (
	NoError ErrorKind = iota
	NameNotFound
	DuplicateDeclaration
	ReadonlyViolation
	TypeCoercion
	UnexpectedReturn
	IndexOutOfRange
	Arity
	Syntax
)

var kindNames = [...]string{
	"no error",
	"name not found",
	"duplicate declaration",
	"readonly violation",
	"type coercion",
	"unexpected return",
	"index out of range",
	"wrong number of arguments",
	"syntax error",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("error kind %d", k)
	}
	return kindNames[k]
}

// Error is the error type produced by all packages of this module.
// Line is 0 if the error could not be attributed to a source line.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

// Sentinels for use with errors.Is.
var (
	ErrNameNotFound         = &Error{Kind: NameNotFound}
	ErrDuplicateDeclaration = &Error{Kind: DuplicateDeclaration}
	ErrReadonlyViolation    = &Error{Kind: ReadonlyViolation}
	ErrTypeCoercion         = &Error{Kind: TypeCoercion}
	ErrUnexpectedReturn     = &Error{Kind: UnexpectedReturn}
	ErrIndexOutOfRange      = &Error{Kind: IndexOutOfRange}
	ErrArity                = &Error{Kind: Arity}
	ErrSyntax               = &Error{Kind: Syntax}
)

// Errorf creates a new error of a given kind, not yet bound to a source line.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Line > 0 {
		return fmt.Sprintf("error at line %d: %s", e.Line, msg)
	}
	return "error: " + msg
}

// Is matches errors by kind, which makes the sentinels usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// AtLine attributes err to a source line, if it is one of ours and not yet
// carrying a line. Other errors are returned unchanged.
func AtLine(err error, line int) error {
	var e *Error
	if line <= 0 || !errors.As(err, &e) || e.Line > 0 {
		return err
	}
	c := *e
	c.Line = line
	return &c
}

// KindOf returns the error kind of err, or NoError if err is not one of ours.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}

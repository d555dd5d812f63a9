package roster

import (
	"errors"
	"fmt"
)

// Kind classifies a roster failure for callers and for the HTTP layer.
type Kind string

const (
	KindValidation  Kind = "ValidationError"
	KindConstraint  Kind = "ConstraintViolation"
	KindNotFound    Kind = "NotFound"
	KindConflict    Kind = "ConflictError"
	KindPersistence Kind = "PersistenceError"
)

// Rule names one hierarchy constraint. Only set on KindConstraint errors.
type Rule string

const (
	RuleDuplicateDirector          Rule = "DuplicateDirector"
	RuleDuplicateSupervisor        Rule = "DuplicateSupervisor"
	RuleInvalidSupervisorSeniority Rule = "InvalidSupervisorSeniority"
	RuleDuplicateSeniority         Rule = "DuplicateSeniority"
	RuleOfficerAlreadyAssigned     Rule = "OfficerAlreadyAssignedToUnit"
)

type Error struct {
	Kind    Kind
	Rule    Rule
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Rule != "" {
		msg = fmt.Sprintf("%s: %s", e.Rule, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind and, when the target carries one, on Rule.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Rule == "" || t.Rule == e.Rule
}

// Sentinels for errors.Is checks.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrConstraint  = &Error{Kind: KindConstraint}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrConflict    = &Error{Kind: KindConflict}
	ErrPersistence = &Error{Kind: KindPersistence}
)

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Violation(rule Rule, format string, args ...any) error {
	return &Error{Kind: KindConstraint, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(err error, format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: err}
}

// Persistence reports a failed batch write. Nothing from the batch is committed.
func Persistence(err error, format string, args ...any) error {
	return &Error{Kind: KindPersistence, Message: fmt.Sprintf(format, args...) + " (0 rows committed)", Err: err}
}

// KindOf returns the kind of a roster error anywhere in the chain, or "" when
// err is not a roster error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// RuleOf returns the violated rule, or "" when err is not a constraint violation.
func RuleOf(err error) Rule {
	var re *Error
	if errors.As(err, &re) {
		return re.Rule
	}
	return ""
}

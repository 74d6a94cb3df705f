package guard

import "errors"

var (
	ErrUnknownVar   = errors.New("unknown variable")
	ErrDuplicateVar = errors.New("duplicate variable")
	ErrEmptyName    = errors.New("empty variable name")

	// ErrReleased is raised (as a panic) when a guard is used after Free.
	ErrReleased = errors.New("guard used after release")

	// ErrForeignGuard is raised (as a panic) when guards of two managers meet.
	ErrForeignGuard = errors.New("guard belongs to another manager")

	ErrSyntax = errors.New("syntax error")

	// ErrUnhandledExpr is returned by Translate for an expression node it
	// does not know how to convert.
	ErrUnhandledExpr = errors.New("unhandled expression")
)

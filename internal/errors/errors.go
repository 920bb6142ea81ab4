// Package errors is the error helper set shared by the infrastructure
// packages. Wrapping goes through pkg/errors so stack traces survive to the
// logs; matching goes through the standard library.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// Is matches target anywhere in err's chain.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As assigns the first error in err's chain that fits target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap adds message and a stack trace to err. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on err without changing its message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

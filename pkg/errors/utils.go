package errors

import (
	"errors"
)

// Is reports whether err matches target. Coded errors match by code.
func Is(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}

func As[T error](err error, target *T) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

// GetErrorCode returns the code of the outermost coded error in err's tree.
func GetErrorCode(err error) Code {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ""
}

// Codes lists the codes of every coded error in err's tree, outermost first.
// A factory failure wrapping a resolution failure yields both.
func Codes(err error) []Code {
	var codes []Code
	walk(err, func(e *Error) bool {
		codes = append(codes, e.Code)
		return true
	})
	return codes
}

// DetailOf returns the first value stored under key by a coded error in
// err's tree, searching outermost first.
func DetailOf(err error, key string) (any, bool) {
	var (
		value any
		found bool
	)
	walk(err, func(e *Error) bool {
		value, found = e.Detail(key)
		return !found
	})
	return value, found
}

func walk(err error, visit func(*Error) bool) bool {
	if err == nil {
		return true
	}
	if e, ok := err.(*Error); ok && !visit(e) {
		return false
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if !walk(inner, visit) {
				return false
			}
		}
	case interface{ Unwrap() error }:
		return walk(u.Unwrap(), visit)
	}
	return true
}

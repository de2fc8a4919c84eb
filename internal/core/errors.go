package core

import "errors"

// Predefined errors returned by likesql builders.
var (
	// ErrInvalidSpecification is returned when a column or index specification
	// cannot produce a definition (for example an empty column name).
	ErrInvalidSpecification = errors.New("invalid specification")
	// ErrInvalidPredicate is returned when find is neither a string nor a Predicate.
	ErrInvalidPredicate = errors.New("predicate must be a string or Predicate")
	// ErrNoActiveDatabase is returned by table-scoped DDL when no database name is available.
	ErrNoActiveDatabase = errors.New("no active database")
	// ErrUnsafeStatement is returned when the configured validator rejects part of a statement.
	ErrUnsafeStatement = errors.New("unsafe statement")
	// ErrUnknownVerb is returned when a statement carries a verb no sink method handles.
	ErrUnknownVerb = errors.New("unknown statement verb")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

package main

import "fmt"

// Error taxonomy. Io errors are not a sentinel here: they come back
// from the os/io layer already wrapped with %w and are told apart with
// errors.Is / errors.As against the underlying error (for example
// *os.PathError), not this set. A page read that ends early at EOF is
// reported as ErrTruncated.
var (
	ErrBadSignature = fmt.Errorf("not a SQLite 3 database file")
	ErrTruncated    = fmt.Errorf("truncated data")
	ErrMalformed    = fmt.Errorf("malformed database")
	ErrNotFound     = fmt.Errorf("not found")
	ErrBadRequest   = fmt.Errorf("unsupported request")
)

// QueryError wraps a sentinel with the operation and structured
// context that produced it, so callers can log a useful message
// without the core needing to format strings for every failure site.
type QueryError struct {
	Op      string
	Err     error
	Context map[string]any
}

func (e *QueryError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%+v)", e.Op, e.Err, e.Context)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newError(op string, err error, ctx map[string]any) *QueryError {
	return &QueryError{Op: op, Err: err, Context: ctx}
}

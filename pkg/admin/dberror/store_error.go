package dberror

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// StoreError is a statement that failed at the store. The driver error is
// kept verbatim so it can be shown to the operator.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// SQLState returns the PostgreSQL error code, or "" for other drivers.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Details builds the log fields for a failed statement.
func Details(err error, extra map[string]interface{}) map[string]interface{} {
	details := map[string]interface{}{"error": err.Error()}
	for k, v := range extra {
		details[k] = v
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		details["op"] = storeErr.Op
	}
	if code := SQLState(err); code != "" {
		details["sqlstate"] = code
	}
	return details
}

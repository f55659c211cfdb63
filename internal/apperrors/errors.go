package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrInsufficientStock indicates a consumption or transfer would drive the
// projected stock of the source location below zero. This reflects a real
// business condition and is never retried automatically.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrTransfer indicates the atomic two-sided transfer write could not be
// committed. No partial effect is left behind, so retrying is safe.
var ErrTransfer = errors.New("transfer could not be committed")

// ErrNegativeStock indicates the projector derived a negative quantity from
// committed history. An upstream entry is missing or misattributed and an
// operator adjustment is required. It is always surfaced, never clamped to zero.
var ErrNegativeStock = errors.New("negative projected stock")

// ErrCacheStale indicates a ledger write committed durably but the stock
// cache for a touched key could neither be invalidated nor refreshed. The
// write must not be retried; the key's cache needs an explicit refresh.
var ErrCacheStale = errors.New("ledger write committed but stock cache could not be invalidated or refreshed")

// ErrCacheMiss indicates a stock cache row is absent for a key that has
// ledger history. The cache is a derived artifact so this is repairable,
// but it must be detected rather than served as a silent zero.
var ErrCacheMiss = errors.New("stock cache entry missing for key with ledger history")

// AppError wraps a lower-level failure with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError means caller input violated a precondition. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

// StoreError wraps a failed document-store operation. IndexConfig is set when the
// store reports a missing or required index, which needs operator remediation.
type StoreError struct {
	Op          string
	Message     string
	IndexConfig bool
	Err         error
}

func (e *StoreError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Generation error kinds.
const (
	KindLLMCall          = "llm_call"
	KindParse            = "parse"
	KindInvalidStructure = "invalid_structure"
)

// GenerationError reports a failed model call or an unparseable response.
type GenerationError struct {
	Message string
	Kind    string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("script generation failed (%s): %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Constructors
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(msg string) error {
	return &UnauthorizedError{Message: msg}
}

// NewStoreError wraps err for op. Domain errors (validation, not found) pass through.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidationError(err) || IsNotFoundError(err) || IsConflictError(err) || IsStoreError(err) {
		return err
	}
	return &StoreError{
		Op:          op,
		Message:     err.Error(),
		IndexConfig: isIndexMessage(err.Error()),
		Err:         err,
	}
}

func NewGenerationError(kind string, err error) error {
	return &GenerationError{Message: err.Error(), Kind: kind, Err: err}
}

// isIndexMessage matches the wording stores use when a query needs an index
// that has not been created ("requires an index", "missing index", "no index").
func isIndexMessage(msg string) bool {
	m := strings.ToLower(msg)
	if !strings.Contains(m, "index") {
		return false
	}
	for _, hint := range []string{"requires an index", "missing index", "no index", "index not found", "create index", "failed_precondition"} {
		if strings.Contains(m, hint) {
			return true
		}
	}
	return false
}

// Type checks
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsUnauthorizedError(err error) bool {
	var e *UnauthorizedError
	return errors.As(err, &e)
}

func IsStoreError(err error) bool {
	var e *StoreError
	return errors.As(err, &e)
}

// IsIndexConfigError reports whether err is a store error caused by index configuration.
func IsIndexConfigError(err error) bool {
	var e *StoreError
	return errors.As(err, &e) && e.IndexConfig
}

func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// HTTPStatus maps a domain error to a status code and a short type label.
func HTTPStatus(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	var gen *GenerationError
	switch {
	case IsValidationError(err):
		return http.StatusBadRequest, "validation"
	case IsUnauthorizedError(err):
		return http.StatusUnauthorized, "unauthorized"
	case IsNotFoundError(err):
		return http.StatusNotFound, "not_found"
	case IsConflictError(err):
		return http.StatusConflict, "conflict"
	case IsIndexConfigError(err):
		return http.StatusInternalServerError, "store_index"
	case IsStoreError(err):
		return http.StatusInternalServerError, "store"
	case errors.As(err, &gen):
		return http.StatusInternalServerError, gen.Kind
	default:
		return http.StatusInternalServerError, "internal"
	}
}

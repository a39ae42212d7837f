package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Code standardizes failure semantics across stores.
type Code string

const (
	CodeValidation Code = "validation"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeConstraint Code = "constraint_violation"
	CodeInternal   Code = "internal"
)

// Error is the canonical error wrapper returned by every store.
type Error struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// NotFound reports a missing entity, naming the id the caller referenced.
func NotFound(op, entity string, id fmt.Stringer) error {
	return New(CodeNotFound, op, fmt.Sprintf("%s not found: %s", entity, id.String()), nil)
}

func Validation(op, message string) error {
	return New(CodeValidation, op, message, nil)
}

func Internal(op string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return New(CodeInternal, op, msg, cause)
}

// Wrap annotates an existing error, preserving its code if it already has one.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return New(CodeInternal, op, err.Error(), err)
}

// FromDB translates storage-layer failures into coded errors. Uniqueness and
// foreign-key violations surface here when a TOCTOU race slips past
// pre-validation.
func FromDB(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return New(CodeNotFound, op, "record not found", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return New(CodeConstraint, op, "unique constraint violated: "+pgErr.ConstraintName, err)
		case "23503":
			return New(CodeConstraint, op, "foreign key constraint violated: "+pgErr.ConstraintName, err)
		}
	}
	return New(CodeInternal, op, err.Error(), err)
}

func IsCode(err error, code Code) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

func CodeOf(err error) Code {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return ""
	}
	return appErr.Code
}

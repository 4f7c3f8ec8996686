package storage

import (
	"errors"
	"strings"

	"edge_api/internal/domain/models"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrDecode   = errors.New("invalid image payload")
	ErrUpload   = errors.New("storage upload failed")
	ErrMetadata = errors.New("image metadata write failed")
)

// ValidationError ошибка входных данных со списком причин и деталями для клиента
type ValidationError struct {
	Message string
	Reasons []string
	Details map[string]interface{}
}

func NewValidationError(message string, reasons ...string) *ValidationError {
	return &ValidationError{Message: message, Reasons: reasons}
}

func (e *ValidationError) WithDetails(details map[string]interface{}) *ValidationError {
	e.Details = details
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Reasons, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// KindOf сопоставляет ошибку стабильному коду
func KindOf(err error) models.ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return models.KindValidation
	case errors.Is(err, ErrNotFound):
		return models.KindNotFound
	case errors.Is(err, ErrConflict):
		return models.KindConflict
	case errors.Is(err, ErrDecode):
		return models.KindDecode
	case errors.Is(err, ErrUpload):
		return models.KindUpload
	case errors.Is(err, ErrMetadata):
		return models.KindMetadata
	default:
		return models.KindUnexpected
	}
}

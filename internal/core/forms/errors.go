package forms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/bills_app/internal/apperrors"
)

// ErrDeleteNotConfirmed is returned by Delete before ShowDeleteDialog.
var ErrDeleteNotConfirmed = fmt.Errorf("%w: delete not confirmed", apperrors.ErrInvalidState)

// ValidationError reports field level problems. It matches apperrors.ErrValidation.
type ValidationError struct {
	Fields  map[FieldName]Message
	Message Message
}

func newValidationError(fields map[FieldName]Message, msg Message) *ValidationError {
	return &ValidationError{Fields: fields, Message: msg}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, string(name))
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, e.Fields[FieldName(name)]))
	}
	if len(parts) == 0 && e.Message != NoMessage {
		parts = append(parts, string(e.Message))
	}
	return fmt.Sprintf("%s: %s", apperrors.ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

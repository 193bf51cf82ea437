package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity lookups.
var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrChangeNotFound  = errors.New("setting change not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ErrVersionConflict indicates the setting's version no longer matches the
// optimistic-concurrency token the writer read (maps to HTTP 409 Conflict).
// The caller must reload and retry; the store never merges or overwrites.
var ErrVersionConflict = errors.New("setting version conflict")

// ErrSettingNotEditable indicates the setting is locked against console
// edits. Editability is a property of the setting, not of the actor's role.
var ErrSettingNotEditable = errors.New("setting is not editable")

// ErrForbidden indicates the mutation guard denied the actor's role.
var ErrForbidden = errors.New("forbidden")

// ValidationError marks malformed input rejected before any write.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf returns a *ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Package buildererr holds the errors returned by generated builders. Generated
// code imports it so callers can match failures with errors.Is / errors.As
// regardless of which builder produced them.
package buildererr

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredField is matched by every MissingFieldError.
var ErrMissingRequiredField = errors.New("missing required field")

// MissingFieldError reports a required field that was never set before Build.
type MissingFieldError struct {
	Type  string
	Field string
}

// MissingField returns the error generated builders report for an unset
// required field.
func MissingField(typeName, field string) error {
	return &MissingFieldError{Type: typeName, Field: field}
}

func (e *MissingFieldError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s is missing", e.Field)
	}
	return fmt.Sprintf("%s: %s is missing", e.Type, e.Field)
}

// Is makes errors.Is(err, ErrMissingRequiredField) true.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// FieldName returns the missing field name when err is a MissingFieldError.
func FieldName(err error) (string, bool) {
	var mf *MissingFieldError
	if errors.As(err, &mf) {
		return mf.Field, true
	}
	return "", false
}

package nvconfig

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize       = errors.New("invalid NV config size")
	ErrInvalidCRC        = errors.New("mismatch crc64")
	ErrBlankRecord       = errors.New("NV config area is erased")
	ErrUnsupportedLayout = errors.New("unsupported NV config layout version")
	ErrInvalidField      = errors.New("invalid field value")
	ErrTextTooLong       = errors.New("text does not fit the field")
)

// FieldError reports a problem with a single record field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

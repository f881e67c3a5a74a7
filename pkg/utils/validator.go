package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// RequestValidator wraps go-playground/validator so handlers can
// validate bound request structs with a single call.
type RequestValidator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	sharedVal     *RequestValidator
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *RequestValidator {
	validatorOnce.Do(func() {
		sharedVal = &RequestValidator{validate: validator.New()}
	})
	return sharedVal
}

func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

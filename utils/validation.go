package utils

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

var customRules = map[string]validator.Func{
	"report_date": func(fl validator.FieldLevel) bool {
		return IsValidDate(fl.Field().String())
	},
}

func newValidator(rules map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("[VALIDATION] failed to register rule %q: %w", tag, err)
		}
	}
	return v, nil
}

// Validator returns the shared validator with the custom rules registered.
// A rule that fails to register is a programming error and panics.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v, err := newValidator(customRules)
		if err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

func ValidateStruct(input any) error {
	return Validator().Struct(input)
}

package api

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weatherlookup.app/pkg/validation"
)

// notBlank rejects strings that are empty after trimming
func notBlank(fl validator.FieldLevel) bool {
	return validation.IsNotEmpty(fl.Field().String())
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("notblank", notBlank)
}

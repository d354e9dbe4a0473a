package handler

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// plateNumberPattern matches Indonesian vehicle plates, e.g. "B 1234 ABC"
var plateNumberPattern = regexp.MustCompile(`^[A-Z]{1,2} ?\d{1,4} ?[A-Z]{0,3}$`)

// RegisterValidators installs custom binding validators on gin's engine
func RegisterValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return engine.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return plateNumberPattern.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
	})
}

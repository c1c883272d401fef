package utils

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()

	// fullname: at least two whitespace-separated name tokens
	_ = Validate.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return len(strings.Fields(fl.Field().String())) >= 2
	})

	// phonedigits: at least 10 digits after stripping formatting
	_ = Validate.RegisterValidation("phonedigits", func(fl validator.FieldLevel) bool {
		return CountDigits(fl.Field().String()) >= 10
	})
}

// CountDigits counts the decimal digits in s, ignoring everything else.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

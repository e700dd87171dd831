package middleware

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the tagged-struct validation for a request body and
// returns per-field errors, empty when the struct is valid.
func ValidateStruct(req interface{}) map[string]string {
	errors := make(map[string]string)
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errors[fe.Field()] = "failed on " + fe.Tag()
			}
		} else {
			errors["body"] = err.Error()
		}
	}
	return errors
}

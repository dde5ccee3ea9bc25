package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request body. The error
// middleware maps validator errors to 400 responses.
func ValidateRequest(request interface{}) error {
	return validate.Struct(request)
}

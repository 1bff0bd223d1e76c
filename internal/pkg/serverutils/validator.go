package serverutils

import (
	"errors"
	"strconv"

	"shift-tracking-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request body and reports
// the first violation as a precondition error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return apperror.Preconditionf("field %s failed on %s", errs[0].Field(), errs[0].Tag())
		}
		return apperror.Preconditionf("%s", err.Error())
	}
	return nil
}

// ParseIntQuery reads a numeric query parameter with a fallback.
func ParseIntQuery(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

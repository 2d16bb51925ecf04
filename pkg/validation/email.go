package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"databowl-gateway/pkg/apperrors"
)

var validate = validator.New()

// CheckEmailFormat returns the trimmed address or an InvalidFormat error.
func CheckEmailFormat(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", apperrors.NewInvalidFormat(MsgEmailInvalid)
	}
	return email, nil
}

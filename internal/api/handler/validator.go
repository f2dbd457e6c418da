package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// passwordSpecials is the set of special characters accepted by the
// password-strength rule.
const passwordSpecials = "!?*#_-"

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Registers the custom "roompassword" tag implementing the password-strength
// rule: 8-24 characters with at least one digit, one uppercase, one lowercase,
// and one special character from "! ? * # _ -".
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("roompassword", validPassword)
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// validPassword implements the strength rule. Go's regexp has no lookaheads,
// so the character-class requirements are checked directly. Length is
// counted in characters, not bytes, so multibyte runes count once.
func validPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if n := utf8.RuneCountInString(s); n < 8 || n > 24 {
		return false
	}
	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	return hasDigit && hasUpper && hasLower && hasSpecial
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid UUID"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "roompassword":
		return field + " must be 8-24 characters and include at least 1 number, 1 uppercase, 1 lowercase, and 1 special character ('! ? * # _ -')"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

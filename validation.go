package storefront

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs the pre-flight signup rules. The returned error is a
// validation.Errors keyed by the json field names.
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Name,
			validation.Required.Error(MsgNameTooShort),
			validation.By(MinTrimmedLength(2, MsgNameTooShort)),
		),
		validation.Field(
			&r.Email,
			validation.Required.Error(MsgInvalidEmail),
			validation.Match(emailShape).Error(MsgInvalidEmail),
		),
		validation.Field(
			&r.Password,
			validation.Required.Error(MsgPasswordTooShort),
			validation.By(MinLength(8, MsgPasswordTooShort)),
		),
		validation.Field(
			&r.PasswordConfirm,
			validation.By(ValidateStringEquals(r.Password, MsgPasswordMismatch)),
		),
	)
}

// Validate checks that both credentials are present
func (c Credentials) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
	if err != nil {
		return ErrRequiredCredentials.Clone()
	}
	return nil
}

// ValidateStringEquals will check that both values match
func ValidateStringEquals(str, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return errors.New(message)
		}
		return nil
	}
}

// MinTrimmedLength checks the rune count after trimming surrounding spaces
func MinTrimmedLength(min int, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < min {
			return errors.New(message)
		}
		return nil
	}
}

// MinLength checks the rune count of a string value
func MinLength(min int, message string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(s) < min {
			return errors.New(message)
		}
		return nil
	}
}

// FormatValidationErrorToMap flattens ozzo errors into field -> message.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, ferr := range fieldErrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

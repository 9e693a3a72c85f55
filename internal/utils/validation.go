package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("discount_code", validateDiscountCode)
	validate.RegisterValidation("voucher_percentage", validateVoucherPercentage)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePasswordStrength(fl.Field().String()) == nil
}

func validateUsername(fl validator.FieldLevel) bool {
	return IsValidUsername(fl.Field().String())
}

func validateDiscountCode(fl validator.FieldLevel) bool {
	return IsValidDiscountCode(fl.Field().String())
}

func validateVoucherPercentage(fl validator.FieldLevel) bool {
	pct := int(fl.Field().Int())
	for _, p := range ValidVoucherPercentages {
		if pct == p {
			return true
		}
	}
	return false
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	codeRegex     = regexp.MustCompile(`^[A-Z0-9]+$`)
)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidUsername(username string) bool {
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return false
	}
	return usernameRegex.MatchString(username)
}

// IsValidDiscountCode accepts uppercased alphanumeric codes of 3 to 20 chars.
func IsValidDiscountCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 3 || len(code) > 20 {
		return false
	}
	return codeRegex.MatchString(code)
}

// ValidatePasswordStrength enforces the registration password policy:
// minimum length, upper, lower, digit and special character.
func ValidatePasswordStrength(password string) error {
	if len(password) < PasswordMinLength {
		return &PasswordError{"password must be at least 8 characters long"}
	}
	if len(password) > PasswordMaxLength {
		return &PasswordError{"password is too long"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return &PasswordError{"password must contain at least one uppercase letter"}
	case !hasLower:
		return &PasswordError{"password must contain at least one lowercase letter"}
	case !hasDigit:
		return &PasswordError{"password must contain at least one digit"}
	case !hasSpecial:
		return &PasswordError{"password must contain at least one special character"}
	}

	return nil
}

type PasswordError struct {
	Reason string
}

func (e *PasswordError) Error() string {
	return e.Reason
}

// FormatValidationErrors converts validator errors into a field→message map
// suitable for ValidationErrorResponse.
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = err.Error()
		return errors
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = field + " is required"
		case "email":
			errors[field] = "invalid email address"
		case "min":
			errors[field] = field + " is too short"
		case "max":
			errors[field] = field + " is too long"
		case "gte":
			errors[field] = field + " must not be negative"
		case "strong_password":
			errors[field] = "password does not meet the strength policy"
		case "username":
			errors[field] = "username may only contain letters, numbers and underscores"
		case "discount_code":
			errors[field] = "discount code must be 3-20 uppercase alphanumeric characters"
		default:
			errors[field] = field + " is invalid"
		}
	}

	return errors
}

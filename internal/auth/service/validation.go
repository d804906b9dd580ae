package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"account-credential-service/internal/user/domain"
)

// FieldError describes a single input violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a request, in rule order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field error(s)", len(e.Fields))
}

const minPasswordLength = 6

// maxPasswordLength is bcrypt's input limit; longer passwords are rejected up
// front so they surface as field errors instead of hashing failures.
const maxPasswordLength = 72

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// International phone numbers with optional country code, parentheses,
	// and - . or space separators.
	mobilePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
)

// rule is one row of a declarative validation table: the field it covers, the
// message reported on failure, and the predicate that must hold.
type rule struct {
	field   string
	message string
	ok      func() bool
}

// evaluate runs every rule and collects each failure. Validation always runs
// to completion so a single request surfaces all of its field errors at once.
func evaluate(rules []rule) *ValidationError {
	var fields []FieldError
	for _, r := range rules {
		if !r.ok() {
			fields = append(fields, FieldError{Field: r.field, Message: r.message})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// SignupInput holds raw signup fields before validation.
type SignupInput struct {
	FullName        string
	Email           string
	MobileNumber    string
	Gender          string
	DateOfBirth     string
	Password        string
	ConfirmPassword string
}

// normalize trims fullName and mobile and lowercases email. Runs before
// validation so rules see the form that would be stored.
func (in SignupInput) normalize() SignupInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	return in
}

func validateSignup(in SignupInput) *ValidationError {
	return evaluate([]rule{
		{"fullName", "Full name is required", func() bool {
			return in.FullName != ""
		}},
		{"email", "Valid email is required", func() bool {
			return emailPattern.MatchString(in.Email)
		}},
		{"mobileNumber", "Valid mobile number is required", func() bool {
			return in.MobileNumber != "" && mobilePattern.MatchString(in.MobileNumber)
		}},
		{"gender", "Valid gender is required", func() bool {
			return domain.ValidGender(in.Gender)
		}},
		{"age", "Valid date format required (YYYY-MM-DD)", func() bool {
			_, err := time.Parse("2006-01-02", in.DateOfBirth)
			return err == nil
		}},
		{"password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength), func() bool {
			return len(in.Password) >= minPasswordLength
		}},
		{"password", fmt.Sprintf("Password must be at most %d characters", maxPasswordLength), func() bool {
			return len(in.Password) <= maxPasswordLength
		}},
		{"confirmPassword", "Passwords do not match", func() bool {
			return in.ConfirmPassword == in.Password
		}},
	})
}

// LoginInput holds raw login fields.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) normalize() LoginInput {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	return in
}

func validateLogin(in LoginInput) *ValidationError {
	return evaluate([]rule{
		{"email", "Valid email is required", func() bool {
			return emailPattern.MatchString(in.Email)
		}},
		{"password", "Password is required", func() bool {
			return in.Password != ""
		}},
	})
}

// ForgotPasswordInput holds the raw forgot-password field.
type ForgotPasswordInput struct {
	Email string
}

func (in ForgotPasswordInput) normalize() ForgotPasswordInput {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	return in
}

func validateForgotPassword(in ForgotPasswordInput) *ValidationError {
	return evaluate([]rule{
		{"email", "Valid email is required", func() bool {
			return emailPattern.MatchString(in.Email)
		}},
	})
}

// ResetPasswordInput holds raw reset-password fields.
type ResetPasswordInput struct {
	Token    string
	Password string
}

func validateResetPassword(in ResetPasswordInput) *ValidationError {
	return evaluate([]rule{
		{"token", "Reset token is required", func() bool {
			return strings.TrimSpace(in.Token) != ""
		}},
		{"password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength), func() bool {
			return len(in.Password) >= minPasswordLength
		}},
		{"password", fmt.Sprintf("Password must be at most %d characters", maxPasswordLength), func() bool {
			return len(in.Password) <= maxPasswordLength
		}},
	})
}

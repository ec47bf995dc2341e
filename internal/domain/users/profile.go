package users

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	dobMin = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	dobMax = time.Date(2010, 12, 31, 23, 59, 59, 0, time.UTC)
)

// Profile is a user directory entry. Unlike credentials, profiles are fully
// replaceable and deletable.
type Profile struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email" validate:"required,email,max=100"`
	FirstName            string    `json:"first_name" validate:"required,max=50"`
	LastName             string    `json:"last_name" validate:"required,max=50"`
	Phone                string    `json:"phone" validate:"required,max=30"`
	DateOfBirth          time.Time `json:"date_of_birth" validate:"dob"`
	Company              string    `json:"company,omitempty"`
	JobTitle             string    `json:"job_title,omitempty"`
	AcceptTerms          bool      `json:"accept_terms" validate:"eq=true"`
	ReceiveNotifications bool      `json:"receive_notifications"`
	RegisteredAt         time.Time `json:"registered_at"`
}

// FullName joins first and last name for display and session records.
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Registration is the inbound payload for account creation: a profile plus
// the plaintext password, which is never stored here.
type Registration struct {
	Profile
	Password string `json:"password" validate:"required,min=6,max=100"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("dob", validDateOfBirth); err != nil {
		panic(fmt.Sprintf("register dob validation: %v", err))
	}
	return v
}

func validDateOfBirth(fl validator.FieldLevel) bool {
	dob, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !dob.Before(dobMin) && !dob.After(dobMax)
}

// ValidationError reports field-level problems with an inbound profile.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, field+": "+message)
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Validate checks a profile against its constraints.
func (p Profile) Validate() error {
	return translate(validate.Struct(p))
}

// Validate checks the registration payload, profile and password together.
func (r Registration) Validate() error {
	return translate(validate.Struct(r))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eq":
		return "must be accepted"
	case "dob":
		return "must be a valid date of birth"
	default:
		return "is invalid"
	}
}

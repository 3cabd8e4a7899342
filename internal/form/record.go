package form

import (
	"errors"
	"fmt"
)

// Wire keys for each field. They double as validation error keys.
const (
	KeyFullName        = "full_name"
	KeyContactNumber   = "contact_number"
	KeyEmail           = "email"
	KeyDay             = "day"
	KeyMonth           = "month"
	KeyYear            = "year"
	KeyPassword        = "password"
	KeyConfirmPassword = "confirm_password"

	// KeyDateOfBirth only appears in Errors; day/month/year are validated as a group.
	KeyDateOfBirth = "date_of_birth"
)

var ErrUnknownField = errors.New("unknown field")

// Record is the in-memory set of field values for one registration attempt.
type Record struct {
	FullName        string `json:"full_name"`
	ContactNumber   string `json:"contact_number"`
	Email           string `json:"email"`
	Day             string `json:"day"`
	Month           string `json:"month"`
	Year            string `json:"year"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Field describes one input in on-screen order.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
}

var fields = []Field{
	{Key: KeyFullName, Label: "Full Name", Placeholder: "Enter your full name"},
	{Key: KeyContactNumber, Label: "Contact Number", Placeholder: "Enter your contact number"},
	{Key: KeyEmail, Label: "Email", Placeholder: "Enter your email"},
	{Key: KeyDay, Label: "Day", Placeholder: "DD"},
	{Key: KeyMonth, Label: "Month", Placeholder: "MM"},
	{Key: KeyYear, Label: "Year", Placeholder: "YYYY"},
	{Key: KeyPassword, Label: "Password", Placeholder: "Enter your password", Secret: true},
	{Key: KeyConfirmPassword, Label: "Confirm Password", Placeholder: "Confirm your password", Secret: true},
}

// Fields returns the field catalogue. The slice is a copy.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func (r *Record) slot(key string) (*string, error) {
	switch key {
	case KeyFullName:
		return &r.FullName, nil
	case KeyContactNumber:
		return &r.ContactNumber, nil
	case KeyEmail:
		return &r.Email, nil
	case KeyDay:
		return &r.Day, nil
	case KeyMonth:
		return &r.Month, nil
	case KeyYear:
		return &r.Year, nil
	case KeyPassword:
		return &r.Password, nil
	case KeyConfirmPassword:
		return &r.ConfirmPassword, nil
	}
	return nil, fmt.Errorf("form: %w: %q", ErrUnknownField, key)
}

// Get returns the value stored under a wire key, or "" for unknown keys.
func (r Record) Get(key string) string {
	p, err := r.slot(key)
	if err != nil {
		return ""
	}
	return *p
}

// Set stores value under a wire key.
func (r *Record) Set(key, value string) error {
	p, err := r.slot(key)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

package form

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const minPasswordLen = 8

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
)

const (
	msgFullNameRequired      = "Full name is required"
	msgContactRequired       = "Contact number is required"
	msgContactFormat         = "Contact number must be a 10-digit number"
	msgEmailRequired         = "Email is required"
	msgEmailFormat           = "Invalid email format"
	msgDateOfBirthRequired   = "Date of birth is required"
	msgPasswordRequired      = "Password is required"
	msgPasswordStrength      = "Password must contain at least 8 characters including uppercase, lowercase, and numbers"
	msgConfirmPasswordDiffer = "Passwords do not match"
)

// Errors maps an error key to a human-readable message.
type Errors map[string]string

// Has reports whether key failed validation.
func (e Errors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Get returns the message for key, or "".
func (e Errors) Get(key string) string { return e[key] }

// Empty reports whether the record passed every rule.
func (e Errors) Empty() bool { return len(e) == 0 }

// Keys returns the error keys in sorted order.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks every rule against r and returns the failures. An empty
// (non-nil) map means the record can be submitted.
func Validate(r Record) Errors {
	errs := Errors{}

	if blank(r.FullName) {
		errs[KeyFullName] = msgFullNameRequired
	}

	switch {
	case blank(r.ContactNumber):
		errs[KeyContactNumber] = msgContactRequired
	case !contactPattern.MatchString(r.ContactNumber):
		errs[KeyContactNumber] = msgContactFormat
	}

	switch {
	case blank(r.Email):
		errs[KeyEmail] = msgEmailRequired
	case !emailPattern.MatchString(r.Email):
		errs[KeyEmail] = msgEmailFormat
	}

	// no calendar check; any non-blank triple passes
	if blank(r.Day) || blank(r.Month) || blank(r.Year) {
		errs[KeyDateOfBirth] = msgDateOfBirthRequired
	}

	switch {
	case blank(r.Password):
		errs[KeyPassword] = msgPasswordRequired
	case !strongPassword(r.Password):
		errs[KeyPassword] = msgPasswordStrength
	}

	if r.ConfirmPassword != r.Password {
		errs[KeyConfirmPassword] = msgConfirmPasswordDiffer
	}

	return errs
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// strongPassword requires minPasswordLen characters with at least one ASCII
// lowercase letter, uppercase letter and digit.
func strongPassword(pw string) bool {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return false
	}
	var lower, upper, digit bool
	for _, c := range pw {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

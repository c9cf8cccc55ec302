package common

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MinPasswordLength is the configured minimum password length.
const MinPasswordLength = 8

// commonPasswords is a short deny-list of frequently used passwords.
var commonPasswords = map[string]bool{
	"password":    true,
	"password1":   true,
	"password123": true,
	"12345678":    true,
	"123456789":   true,
	"qwerty123":   true,
	"qwertyuiop":  true,
	"iloveyou":    true,
	"letmein1":    true,
	"admin123":    true,
	"welcome1":    true,
	"sunshine":    true,
	"football":    true,
	"princess":    true,
	"dragon123":   true,
}

var numericOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidateEmailFormat checks that the address is well-formed.
func ValidateEmailFormat(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

// ValidatePassword runs the configured strength validators and returns one
// human-readable message per failing rule. attributes maps attribute names
// (email, username, first name, ...) to their values for the similarity check.
func ValidatePassword(password string, attributes map[string]string) []string {
	var messages []string

	if len(password) < MinPasswordLength {
		messages = append(messages, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	if numericOnly.MatchString(password) {
		messages = append(messages, "Password cannot be entirely numeric")
	}
	if commonPasswords[strings.ToLower(password)] {
		messages = append(messages, "Password is too common")
	}

	lowered := strings.ToLower(password)
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := strings.ToLower(strings.TrimSpace(attributes[name]))
		if len(value) < 3 {
			continue
		}
		// Compare against the local part of email addresses
		if at := strings.Index(value, "@"); at > 0 {
			value = value[:at]
		}
		if strings.Contains(lowered, value) || strings.Contains(value, lowered) {
			messages = append(messages, fmt.Sprintf("Password is too similar to the %s", name))
		}
	}

	return messages
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// Package validation holds the pure input validators for the auth flows.
// Validators return tagged errors (common.KindInvalidArgument) and touch no
// I/O, so every flow can fail fast before reaching a store or repository.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

const (
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxNameLength     = 100
	maxTokenLength    = 2000
)

// emailRegex is a simplified RFC 5322 pattern.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks address format and length.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return common.E(common.KindInvalidArgument, "email is required")
	}

	if len(email) > maxEmailLength {
		return common.E(common.KindInvalidArgument, "email must not exceed 255 characters")
	}

	if !emailRegex.MatchString(email) {
		return common.E(common.KindInvalidArgument, "invalid email format")
	}

	return nil
}

// ValidatePassword checks length bounds and character-class requirements.
// All missing classes are reported in one message.
func ValidatePassword(password string) error {
	if password == "" {
		return common.E(common.KindInvalidArgument, "password is required")
	}

	if len(password) < minPasswordLength {
		return common.E(common.KindInvalidArgument, "password must be at least 8 characters long")
	}

	if len(password) > maxPasswordLength {
		return common.E(common.KindInvalidArgument, "password must not exceed 128 characters")
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= '0' && char <= '9':
			hasNumber = true
		case char >= '!' && char <= '/' || char >= ':' && char <= '@' || char >= '[' && char <= '`' || char >= '{' && char <= '~':
			hasSpecial = true
		}
	}

	var missing []string
	if !hasUpper {
		missing = append(missing, "at least one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "at least one lowercase letter")
	}
	if !hasNumber {
		missing = append(missing, "at least one number")
	}
	if !hasSpecial {
		missing = append(missing, "at least one special character")
	}

	if len(missing) > 0 {
		return common.E(common.KindInvalidArgument, fmt.Sprintf("password must contain %s", strings.Join(missing, ", ")))
	}

	return nil
}

// ValidateName checks a first or last name. fieldName is used in messages.
func ValidateName(name, fieldName string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return common.E(common.KindInvalidArgument, fmt.Sprintf("%s is required", fieldName))
	}

	if len(name) > maxNameLength {
		return common.E(common.KindInvalidArgument, fmt.Sprintf("%s must not exceed 100 characters", fieldName))
	}

	// letters, spaces, hyphens and apostrophes only
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			char == ' ' ||
			char == '-' ||
			char == '\'') {
			return common.E(common.KindInvalidArgument, fmt.Sprintf("%s contains invalid characters", fieldName))
		}
	}

	return nil
}

// ValidateToken checks the opaque token argument of the reset flow.
func ValidateToken(token string) error {
	token = strings.TrimSpace(token)

	if token == "" {
		return common.E(common.KindInvalidArgument, "token is required")
	}

	if len(token) > maxTokenLength {
		return common.E(common.KindInvalidArgument, "token is too long")
	}

	return nil
}

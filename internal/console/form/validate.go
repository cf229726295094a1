package form

import (
	"regexp"
	"strings"
	"unicode"
)

// Patterns for the email and phone rules. Phone allows an optional leading
// "+" then 1–16 digits with a nonzero first digit, after whitespace is
// stripped.
var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
)

const minSecretLen = 6

// Validate maps a draft snapshot to field errors. Every rule is evaluated
// independently and every failing field is reported; nothing short-circuits.
// The whole map is recomputed on each pass — no incremental state survives
// between calls. Pure: no side effects, no I/O.
func Validate(d Draft, mode Mode) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		errs[FieldName] = "Full name is required."
	case len([]rune(name)) < 2:
		errs[FieldName] = "Full name must be at least 2 characters."
	}

	email := strings.TrimSpace(d.Email)
	switch {
	case email == "":
		errs[FieldEmail] = "Email is required."
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "A valid email address is required."
	}

	if phone := stripSpace(d.Phone); phone != "" && !phonePattern.MatchString(phone) {
		errs[FieldPhone] = "Phone must be digits with an optional leading +."
	}

	// Create always checks the secret. Edit checks it only when the user
	// typed one; a blank secret on edit means "keep the current password".
	if mode == Create || d.Secret != "" {
		if msg := secretError(d.Secret); msg != "" {
			errs[FieldSecret] = msg
		}
	}

	if strings.TrimSpace(d.RoleID) == "" {
		errs[FieldRole] = "Role is required."
	}

	return errs
}

// secretError applies the password policy: minimum length plus three
// independent character-class checks.
func secretError(secret string) string {
	if len(secret) < minSecretLen {
		return "Password must be at least 6 characters."
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		return "Password must contain a lowercase letter."
	}
	if !hasUpper {
		return "Password must contain an uppercase letter."
	}
	if !hasDigit {
		return "Password must contain a digit."
	}
	return ""
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

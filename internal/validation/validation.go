package validation

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Field shape rules for registration and profile edits. Messages are written
// for direct display next to the offending input.

var (
	usernameAllowed = regexp.MustCompile(`^[a-z0-9._]+$`)
	usernameRepeat  = regexp.MustCompile(`[._]{2}`)
	emailShape      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordDigit   = regexp.MustCompile(`[0-9]`)
	passwordSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
	phoneDigits     = regexp.MustCompile(`[0-9]`)
)

// MaxAvatarLength bounds the stored data-URL; anything larger belongs in
// object storage, not a table column.
const MaxAvatarLength = 1 << 20

var folder = cases.Fold()

// NormalizeUsername lowercases and trims a submitted username so lookups and
// uniqueness are case-insensitive. NFKC first, so visually identical
// compatibility forms collapse before folding.
func NormalizeUsername(username string) string {
	return folder.String(norm.NFKC.String(strings.TrimSpace(username)))
}

func ValidateUsername(username string) error {
	switch {
	case len(username) < 4:
		return errors.New("Username must be at least 4 characters long")
	case len(username) > 12:
		return errors.New("Username must be at most 12 characters long")
	case !usernameAllowed.MatchString(username):
		return errors.New("Username can only contain lowercase letters, numbers, dots and underscores")
	case usernameRepeat.MatchString(username):
		return errors.New("Username cannot contain consecutive dots or underscores")
	case username[0] >= '0' && username[0] <= '9':
		return errors.New("Username cannot start with a number")
	case username[0] == '_':
		return errors.New("Username cannot start with an underscore")
	case username[0] == '.':
		return errors.New("Username cannot start with a dot")
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailShape.MatchString(email) {
		return errors.New("Invalid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	switch {
	case len(password) < 8:
		return errors.New("Password must be at least 8 characters long")
	case !passwordUpper.MatchString(password):
		return errors.New("Password must contain at least one uppercase letter")
	case !passwordLower.MatchString(password):
		return errors.New("Password must contain at least one lowercase letter")
	case !passwordDigit.MatchString(password):
		return errors.New("Password must contain at least one number")
	case !passwordSpecial.MatchString(password):
		return errors.New("Password must contain at least one special character")
	}
	return nil
}

// ValidatePhone accepts an empty value (the field is optional); otherwise the
// number must carry 7 to 15 digits in any formatting.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := len(phoneDigits.FindAllString(phone, -1))
	if digits < 7 || digits > 15 {
		return errors.New("Phone number must contain between 7 and 15 digits")
	}
	return nil
}

// ValidateAvatar accepts an empty value (clears the avatar) or a size-bounded
// image data URL.
func ValidateAvatar(avatar string) error {
	if avatar == "" {
		return nil
	}
	if !strings.HasPrefix(avatar, "data:image/") {
		return errors.New("Avatar must be an image data URL")
	}
	if len(avatar) > MaxAvatarLength {
		return errors.New("Avatar image is too large")
	}
	return nil
}

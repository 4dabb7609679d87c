package validation_test

import (
	"strings"
	"testing"

	"github.com/DoyleJ11/user-manager/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "maria.k", validation.NormalizeUsername("  Maria.K "))
	assert.Equal(t, "jose", validation.NormalizeUsername("JOSE"))
	// NFKC collapses the ﬁ ligature before folding.
	assert.Equal(t, "fiona", validation.NormalizeUsername("ﬁona"))
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"maria", "j.doe", "user_42", "abcd"}
	for _, u := range valid {
		assert.NoError(t, validation.ValidateUsername(u), u)
	}

	invalid := []string{
		"abc",               // too short
		"abcdefghijklm",     // too long
		"Maria",             // uppercase
		"user name",         // space
		"a..b",              // consecutive dots
		"a__b",              // consecutive underscores
		"1user",             // starts with digit
		"_user",             // starts with underscore
		".user",             // starts with dot
	}
	for _, u := range invalid {
		assert.Error(t, validation.ValidateUsername(u), u)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validation.ValidateEmail("a@b.co"))
	assert.Error(t, validation.ValidateEmail("not-an-email"))
	assert.Error(t, validation.ValidateEmail("a@b"))
	assert.Error(t, validation.ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, validation.ValidatePassword("Str0ng!pass"))

	cases := map[string]string{
		"Sh0rt!a":     "length",
		"weakpass1!":  "uppercase",
		"WEAKPASS1!":  "lowercase",
		"Weakpass!!":  "number",
		"Weakpass11":  "special",
	}
	for pw, why := range cases {
		assert.Error(t, validation.ValidatePassword(pw), why)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, validation.ValidatePhone(""))
	assert.NoError(t, validation.ValidatePhone("+1 (555) 123-4567"))
	assert.Error(t, validation.ValidatePhone("12345"))
	assert.Error(t, validation.ValidatePhone("1234567890123456"))
}

func TestValidateAvatar(t *testing.T) {
	assert.NoError(t, validation.ValidateAvatar(""))
	assert.NoError(t, validation.ValidateAvatar("data:image/png;base64,iVBORw0KGgo="))
	assert.Error(t, validation.ValidateAvatar("https://example.com/avatar.png"))

	big := "data:image/png;base64," + strings.Repeat("A", validation.MaxAvatarLength)
	assert.Error(t, validation.ValidateAvatar(big))
}

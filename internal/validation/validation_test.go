package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password1", false},
		{"too short", "pass1", true},
		{"too long", strings.Repeat("a1", 65), true},
		{"no digit", "passwordonly", true},
		{"no letter", "12345678", true},
		{"unicode letter", "pässwörd1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "jane_doe", false},
		{"valid with hyphen", "jane-doe", false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 31), true},
		{"spaces", "jane doe", true},
		{"special chars", "jane@doe", true},
		{"leading underscore", "_jane", true},
		{"trailing hyphen", "jane-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "jane@example.com", false},
		{"subdomain", "jane@mail.example.co.uk", false},
		{"missing at", "janeexample.com", true},
		{"missing tld", "jane@example", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 250) + "@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePostText(t *testing.T) {
	assert.NoError(t, ValidatePostText("hello world"))
	assert.Error(t, ValidatePostText(""))
	assert.Error(t, ValidatePostText("   \n\t  "))
	assert.Error(t, ValidatePostText(strings.Repeat("x", 10001)))
	assert.NoError(t, ValidatePostText(strings.Repeat("x", 10000)))
}

func TestValidateBio(t *testing.T) {
	assert.NoError(t, ValidateBio(""))
	assert.NoError(t, ValidateBio("gopher"))
	assert.Error(t, ValidateBio(strings.Repeat("x", 501)))
}

package validation

import (
	"html"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestPasswordStrength(t *testing.T) {
	rule := StaffPasswordPolicy

	tests := []struct {
		name      string
		password  string
		shouldErr bool
		errMsg    string
	}{
		{name: "valid password", password: "SecurePass123!"},
		{name: "too short", password: "Sh1!", shouldErr: true, errMsg: "password must be at least 8 characters"},
		{name: "missing uppercase", password: "securepass123!", shouldErr: true, errMsg: "uppercase letter"},
		{name: "missing lowercase", password: "SECUREPASS123!", shouldErr: true, errMsg: "lowercase letter"},
		{name: "missing number", password: "SecurePass!", shouldErr: true, errMsg: "number"},
		{name: "missing special char", password: "SecurePass123", shouldErr: true, errMsg: "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.shouldErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("non string value", func(t *testing.T) {
		assert.Error(t, rule.Validate(42))
	})
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Validate("a@b.com", Email))
	assert.NoError(t, validation.Validate("first.last+tag@example.co.uk", Email))
	assert.Error(t, validation.Validate("not-an-email", Email))
	assert.Error(t, validation.Validate("a@b", Email))
}

func TestURL(t *testing.T) {
	assert.NoError(t, validation.Validate("", URL))
	assert.NoError(t, validation.Validate("https://console.aws.amazon.com/", URL))
	assert.NoError(t, validation.Validate("http://10.0.0.1:8080/admin", URL))
	assert.Error(t, validation.Validate("console.aws.amazon.com", URL))
	assert.Error(t, validation.Validate("ftp://files.example.com", URL))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("value", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestPort(t *testing.T) {
	tests := []struct {
		name      string
		value     interface{}
		shouldErr bool
	}{
		{name: "numeric string", value: "993"},
		{name: "int", value: 587},
		{name: "empty string", value: ""},
		{name: "zero", value: "0", shouldErr: true},
		{name: "too large", value: 70000, shouldErr: true},
		{name: "not a number", value: "imap", shouldErr: true},
		{name: "wrong type", value: 1.5, shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, Port)
			if tt.shouldErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("code", "username: must be a valid email address"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "username: must be a valid email address")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "", SanitizeText(""))
	assert.Equal(t, "VPN via office router", SanitizeText("  VPN via office router "))
	assert.Equal(t, "hello", SanitizeText("<script>alert(1)</script><b>hello</b>"))
	assert.Equal(t, "Tom's notes & more", SanitizeText("Tom's notes & more"))
	assert.Equal(t, "a < b > c", SanitizeText("a < b > c"))
}

func TestSanitizeText_EncodedMarkup(t *testing.T) {
	inputs := []string{
		"&lt;script&gt;alert(1)&lt;/script&gt;",
		"&amp;lt;script&amp;gt;alert(1)&amp;lt;/script&amp;gt;",
		"note &lt;img src=x onerror=alert(1)&gt; end",
		"<b>&lt;i&gt;x&lt;/i&gt;</b>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			out := SanitizeText(input)

			assert.NotContains(t, html.UnescapeString(out), "<script")
			assert.NotContains(t, html.UnescapeString(out), "<img")
			assert.NotContains(t, html.UnescapeString(out), "<i>")
			assert.Equal(t, out, SanitizeText(out))
		})
	}

	assert.Equal(t, "", SanitizeText("&lt;script&gt;alert(1)&lt;/script&gt;"))
}

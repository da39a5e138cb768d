package domain

import (
	validation "github.com/jellydator/validation"
	"github.com/samber/lo"

	customValidation "github.com/allisson/credvault/internal/validation"
)

// Field length ceilings. Password limits apply to the plaintext.
const (
	maxServiceNameLength = 100
	maxUsernameLength    = 100
	maxPasswordLength    = 500
	maxURLLength         = 200
)

// ValidateGeneral checks a general credential. The username is the login email.
func ValidateGeneral(f *Fields) error {
	err := validation.ValidateStruct(f,
		validation.Field(&f.ServiceName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxServiceNameLength),
		),
		validation.Field(&f.Username,
			validation.Required,
			customValidation.Email,
			validation.Length(1, maxUsernameLength),
		),
		validation.Field(&f.Password,
			validation.When(!f.storedPassword, validation.Required),
			customValidation.NotBlank,
			validation.Length(0, maxPasswordLength),
		),
		validation.Field(&f.URL, validation.Length(0, maxURLLength), customValidation.URL),
	)
	return customValidation.WrapValidationError(err)
}

// ValidateEmail checks an email credential. Both server blocks are required.
func ValidateEmail(f *Fields) error {
	err := validation.Errors{
		"serviceName": validation.Validate(f.ServiceName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxServiceNameLength),
		),
		"incomingServer": validation.Validate(f.Email.IncomingServer, validation.Required, customValidation.NotBlank),
		"incomingPort":   validation.Validate(f.Email.IncomingPort, validation.Required, customValidation.Port),
		"incomingUsername": validation.Validate(f.Username,
			validation.Required,
			validation.Length(1, maxUsernameLength),
		),
		"incomingPassword": validation.Validate(f.Password,
			validation.When(!f.storedPassword, validation.Required),
			customValidation.NotBlank,
			validation.Length(0, maxPasswordLength),
		),
		"outgoingServer": validation.Validate(f.Email.OutgoingServer, validation.Required, customValidation.NotBlank),
		"outgoingPort":   validation.Validate(f.Email.OutgoingPort, validation.Required, customValidation.Port),
		"outgoingUsername": validation.Validate(f.Email.OutgoingUser,
			validation.Required,
			validation.Length(1, maxUsernameLength),
		),
		"outgoingPassword": validation.Validate(f.Email.OutgoingPassword,
			validation.When(!f.storedOutgoingPassword, validation.Required),
			customValidation.NotBlank,
			validation.Length(0, maxPasswordLength),
		),
	}.Filter()
	return customValidation.WrapValidationError(err)
}

// Validate applies the rules of credential type t.
func (f *Fields) Validate(t CredentialType) error {
	if t == CredentialTypeEmail {
		return ValidateEmail(f)
	}
	return ValidateGeneral(f)
}

// Apply copies the supplied fields of input onto f and returns their names.
// Server settings only apply to email credentials and URL only to general ones.
func (f *Fields) Apply(t CredentialType, input *UpdateCredentialInput) []string {
	isEmail := t == CredentialTypeEmail

	return lo.Compact([]string{
		assign("serviceName", &f.ServiceName, input.ServiceName, true),
		assign("username", &f.Username, input.Username, true),
		assign("password", &f.Password, input.Password, true),
		assign("url", &f.URL, input.URL, !isEmail),
		assign("notes", &f.Notes, input.Notes, true),
		assign("incomingServer", &f.Email.IncomingServer, input.IncomingServer, isEmail),
		assign("incomingPort", &f.Email.IncomingPort, input.IncomingPort, isEmail),
		assign("incomingSSL", &f.Email.IncomingSSL, input.IncomingSSL, isEmail),
		assign("outgoingServer", &f.Email.OutgoingServer, input.OutgoingServer, isEmail),
		assign("outgoingPort", &f.Email.OutgoingPort, input.OutgoingPort, isEmail),
		assign("outgoingUsername", &f.Email.OutgoingUser, input.OutgoingUser, isEmail),
		assign("outgoingPassword", &f.Email.OutgoingPassword, input.OutgoingPassword, isEmail),
		assign("outgoingSSL", &f.Email.OutgoingSSL, input.OutgoingSSL, isEmail),
	})
}

// assign sets *dst to *src when src is supplied and applicable, and returns
// name when it did.
func assign[T any](name string, dst *T, src *T, applicable bool) string {
	if src == nil || !applicable {
		return ""
	}
	*dst = *src
	return name
}

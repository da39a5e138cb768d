package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
)

func TestCreateCredentialRequest_ToInput(t *testing.T) {
	t.Run("email maps incoming login onto the primary fields", func(t *testing.T) {
		req := &CreateCredentialRequest{
			ClientID:         uuid.NewString(),
			ServiceName:      "Mailbox",
			CredentialType:   "email",
			URL:              "https://ignored.example.com",
			IncomingServer:   "imap.acme.test",
			IncomingPort:     993,
			IncomingUsername: "info@acme.test",
			IncomingPassword: "incoming-pass",
			OutgoingServer:   "smtp.acme.test",
			OutgoingPort:     465,
			OutgoingUsername: "info@acme.test",
			OutgoingPassword: "outgoing-pass",
		}
		require.NoError(t, req.Validate())

		input := req.ToInput()
		assert.Equal(t, credentialDomain.CredentialTypeEmail, input.CredentialType)
		assert.Equal(t, "info@acme.test", input.Username)
		assert.Equal(t, "incoming-pass", input.Password)
		assert.Empty(t, input.URL)
		assert.Equal(t, "outgoing-pass", input.Email.OutgoingPassword)
		assert.NoError(t, input.Validate())
	})

	t.Run("empty type defaults to general", func(t *testing.T) {
		req := &CreateCredentialRequest{ClientID: uuid.NewString(), Username: "a@b.com"}
		require.NoError(t, req.Validate())
		assert.Equal(t, credentialDomain.CredentialTypeGeneral, req.ToInput().CredentialType)
	})
}

func TestUpdateCredentialRequest_ToInput(t *testing.T) {
	username := "generic@acme.test"
	incoming := "imap-login@acme.test"
	req := &UpdateCredentialRequest{Username: &username, IncomingUsername: &incoming}

	input := req.ToInput()
	require.NotNil(t, input.Username)
	assert.Equal(t, incoming, *input.Username)
	assert.Nil(t, input.Password)
}

func TestMapCredentialToResponse(t *testing.T) {
	fields := &credentialDomain.Fields{
		Username: "info@acme.test",
		Notes:    "front desk",
		Email:    credentialDomain.EmailServers{IncomingServer: "imap.acme.test", IncomingPort: 993},
	}
	notes, err := credentialDomain.NewEmailConfig(fields, "outgoing-blob").Serialize()
	require.NoError(t, err)

	response := MapCredentialToResponse(&credentialDomain.Credential{
		ID:    uuid.New(),
		Notes: notes,
	})

	assert.Equal(t, "email", response.CredentialType)
	assert.Equal(t, "front desk", response.Notes)
	require.NotNil(t, response.EmailConfig)
	assert.Equal(t, 993, response.EmailConfig.IncomingPort)
	assert.Equal(t, "outgoing-blob", response.EmailConfig.OutgoingPassword)
	assert.Nil(t, response.LastAccessedAt)
}

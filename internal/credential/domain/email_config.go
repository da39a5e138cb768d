package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EmailConfig is the sub-document stored as JSON in the notes of an email
// credential. OutgoingPassword holds an EncodedBlob when persisted.
type EmailConfig struct {
	IncomingServer   string    `json:"incomingServer"`
	IncomingPort     PortValue `json:"incomingPort"`
	IncomingUsername string    `json:"incomingUsername"`
	IncomingSSL      bool      `json:"incomingSSL"`
	OutgoingServer   string    `json:"outgoingServer"`
	OutgoingPort     PortValue `json:"outgoingPort"`
	OutgoingUsername string    `json:"outgoingUsername"`
	OutgoingPassword string    `json:"outgoingPassword"`
	OutgoingSSL      bool      `json:"outgoingSSL"`
	AdditionalNotes  string    `json:"additionalNotes"`
}

// PortValue is a port number that also decodes from a JSON string, which is
// how older rows stored it.
type PortValue int

// UnmarshalJSON accepts 993 as well as "993".
func (p *PortValue) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return err
	}
	*p = PortValue(n)
	return nil
}

// NewEmailConfig builds the sub-document from f. outgoingPasswordBlob must
// already be encrypted.
func NewEmailConfig(f *Fields, outgoingPasswordBlob string) *EmailConfig {
	return &EmailConfig{
		IncomingServer:   f.Email.IncomingServer,
		IncomingPort:     PortValue(f.Email.IncomingPort),
		IncomingUsername: f.Username,
		IncomingSSL:      f.Email.IncomingSSL,
		OutgoingServer:   f.Email.OutgoingServer,
		OutgoingPort:     PortValue(f.Email.OutgoingPort),
		OutgoingUsername: f.Email.OutgoingUser,
		OutgoingPassword: outgoingPasswordBlob,
		OutgoingSSL:      f.Email.OutgoingSSL,
		AdditionalNotes:  f.Notes,
	}
}

// Serialize returns the JSON form stored in the credential notes.
func (c *EmailConfig) Serialize() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DeserializeEmailConfig parses notes as an EmailConfig. It returns false when
// notes is not JSON or has no incomingServer, in which case notes is plain text.
func DeserializeEmailConfig(notes string) (*EmailConfig, bool) {
	if !strings.HasPrefix(strings.TrimSpace(notes), "{") {
		return nil, false
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(notes), &keys); err != nil {
		return nil, false
	}
	if _, ok := keys["incomingServer"]; !ok {
		return nil, false
	}

	var cfg EmailConfig
	if err := json.Unmarshal([]byte(notes), &cfg); err != nil {
		return nil, false
	}
	return &cfg, true
}

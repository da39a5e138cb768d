package dto

import (
	"time"

	"github.com/samber/lo"

	clientDomain "github.com/allisson/credvault/internal/client/domain"
	"github.com/allisson/credvault/internal/httputil"
)

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID              string    `json:"id"`
	ClientName      string    `json:"clientName"`
	ContactPerson   string    `json:"contactPerson"`
	Address         string    `json:"address"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Notes           string    `json:"notes"`
	CreatedBy       string    `json:"createdBy"`
	CreatedByID     string    `json:"createdById"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	CredentialCount *int      `json:"credentialCount,omitempty"`
}

// MapClientToResponse converts a domain client to an API response.
func MapClientToResponse(client *clientDomain.Client) ClientResponse {
	return ClientResponse{
		ID:            client.ID.String(),
		ClientName:    client.ClientName,
		ContactPerson: client.ContactPerson,
		Address:       client.Address,
		Email:         client.Email,
		Phone:         client.Phone,
		Notes:         client.Notes,
		CreatedBy:     client.CreatedBy,
		CreatedByID:   client.CreatedByID.String(),
		CreatedAt:     client.CreatedAt,
		UpdatedAt:     client.UpdatedAt,
	}
}

// ListClientsResponse represents a page of clients in API responses.
type ListClientsResponse struct {
	Clients    []ClientResponse    `json:"clients"`
	Pagination httputil.Pagination `json:"pagination"`
}

// MapClientsToListResponse converts a page of clients, including credential counts.
func MapClientsToListResponse(clients []*clientDomain.Client, offset, limit, total int) ListClientsResponse {
	return ListClientsResponse{
		Clients: lo.Map(clients, func(client *clientDomain.Client, _ int) ClientResponse {
			response := MapClientToResponse(client)
			response.CredentialCount = lo.ToPtr(client.CredentialCount)
			return response
		}),
		Pagination: httputil.Pagination{Limit: limit, Offset: offset, Total: total},
	}
}

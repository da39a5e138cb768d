package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
	"github.com/allisson/credvault/internal/client/http/dto"
	"github.com/allisson/credvault/internal/client/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*ClientHandler, *mocks.MockClientUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockClientUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClientHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(
	method, path string,
	body any,
	actor *authDomain.Actor,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req = req.WithContext(authHTTP.WithActor(req.Context(), actor))
	}
	c.Request = req

	return c, w
}

func testActor() *authDomain.Actor {
	return &authDomain.Actor{ID: uuid.Must(uuid.NewV7()), Email: "staff@example.com", Role: authDomain.RoleUser}
}

func testClient(owner uuid.UUID) *clientDomain.Client {
	return &clientDomain.Client{
		ID:            uuid.Must(uuid.NewV7()),
		ClientName:    "Acme",
		ContactPerson: "Jane Doe",
		Address:       "Main Street 1",
		CreatedByID:   owner,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

func TestClientHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		actor := testActor()
		client := testClient(actor.ID)

		mockUseCase.On("Create", mock.Anything, actor, &clientDomain.CreateClientInput{
			ClientName:    "Acme",
			ContactPerson: "Jane Doe",
			Address:       "Main Street 1",
		}).Return(client, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/clients", dto.CreateClientRequest{
			ClientName:    "Acme",
			ContactPerson: "Jane Doe",
			Address:       "Main Street 1",
		}, actor)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ClientResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, client.ID.String(), response.ID)
		assert.Equal(t, "Acme", response.ClientName)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingRequiredField", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/clients", dto.CreateClientRequest{
			ClientName: "Acme",
		}, testActor())
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NoActor", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/clients", dto.CreateClientRequest{}, nil)
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestClientHandler_GetHandler(t *testing.T) {
	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/clients/nope", nil, testActor())
		c.Params = gin.Params{{Key: "id", Value: "nope"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		actor := testActor()
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, actor, id).Return(nil, clientDomain.ErrClientNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/clients/"+id.String(), nil, actor)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestClientHandler_ListHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	actor := testActor()
	client := testClient(actor.ID)
	client.CredentialCount = 3

	mockUseCase.On("List", mock.Anything, actor, 0, 50).Return([]*clientDomain.Client{client}, 1, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/clients", nil, actor)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ListClientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Clients, 1)
	require.NotNil(t, response.Clients[0].CredentialCount)
	assert.Equal(t, 3, *response.Clients[0].CredentialCount)
	assert.Equal(t, 1, response.Pagination.Total)
}

func TestClientHandler_UpdateHandler(t *testing.T) {
	t.Run("Error_Forbidden", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		actor := testActor()
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Update", mock.Anything, actor, id, mock.Anything).
			Return(nil, clientDomain.ErrNotCreator).
			Once()

		name := "Other"
		c, w := createTestContext(http.MethodPatch, "/v1/clients/"+id.String(),
			dto.UpdateClientRequest{ClientName: &name}, actor)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestClientHandler_DeleteHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	actor := testActor()
	id := uuid.Must(uuid.NewV7())

	mockUseCase.On("Delete", mock.Anything, actor, id).Return(nil).Once()

	c, w := createTestContext(http.MethodDelete, "/v1/clients/"+id.String(), nil, actor)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	handler.DeleteHandler(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockUseCase.AssertExpectations(t)
}

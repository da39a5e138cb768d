package http

import (
	"encoding/json"
	"errors"
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

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/audit/http/dto"
	"github.com/allisson/credvault/internal/audit/usecase/mocks"
	"github.com/allisson/credvault/internal/httputil"
)

func setupTestAuditLogHandler(t *testing.T) (*AuditLogHandler, *mocks.MockAuditLogUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockAuditLogUseCase := &mocks.MockAuditLogUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuditLogHandler(mockAuditLogUseCase, logger), mockAuditLogUseCase
}

func createTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestAuditLogHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditLogHandler(t)

		entries := []*auditDomain.Entry{
			{
				ID:        uuid.Must(uuid.NewV7()),
				UserID:    uuid.Must(uuid.NewV7()),
				Action:    auditDomain.ActionViewCredential,
				Resource:  auditDomain.ResourceCredential,
				Timestamp: time.Now().UTC(),
				Success:   true,
			},
		}

		mockUseCase.On("List", mock.Anything, auditDomain.Filter{}, 0, 100).Return(entries, 1, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/audit-logs")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditLogsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Logs, 1)
		assert.Equal(t, "VIEW_CREDENTIAL", response.Logs[0].Action)
		assert.Equal(t, httputil.Pagination{Limit: 100, Offset: 0, Total: 1}, response.Pagination)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_WithFilters", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditLogHandler(t)
		userID := uuid.Must(uuid.NewV7())
		from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		mockUseCase.On("List", mock.Anything, mock.MatchedBy(func(f auditDomain.Filter) bool {
			return f.UserID != nil && *f.UserID == userID &&
				f.Action == auditDomain.ActionDecryptCredential &&
				f.Resource == auditDomain.ResourceCredential &&
				f.CreatedAtFrom != nil && f.CreatedAtFrom.Equal(from) &&
				f.CreatedAtTo == nil
		}), 5, 10).Return([]*auditDomain.Entry{}, 0, nil).Once()

		c, w := createTestContext(
			http.MethodGet,
			"/v1/audit-logs?user_id="+userID.String()+
				"&action=DECRYPT_CREDENTIAL&resource=CREDENTIAL&created_at_from=2026-02-01T00:00:00Z&offset=5&limit=10",
		)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_LimitTooLarge", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditLogHandler(t)

		mockUseCase.On("List", mock.Anything, auditDomain.Filter{}, 0, 5000).
			Return(nil, 0, auditDomain.ErrLimitExceeded).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/audit-logs?limit=5000")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "invalid_range", response.Error)
		assert.Equal(t, "Limit cannot exceed 1000", response.Message)
	})

	t.Run("Error_InvalidUserID", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditLogHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/audit-logs?user_id=nope")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvertedTimeRange", func(t *testing.T) {
		handler, _ := setupTestAuditLogHandler(t)

		c, w := createTestContext(
			http.MethodGet,
			"/v1/audit-logs?created_at_from=2026-03-01T00:00:00Z&created_at_to=2026-02-01T00:00:00Z",
		)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestAuditLogHandler(t)

		mockUseCase.On("List", mock.Anything, auditDomain.Filter{}, 0, 100).
			Return(nil, 0, errors.New("db down")).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/audit-logs")
		handler.ListHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

package usecase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/metrics"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	"github.com/allisson/credvault/internal/staff/usecase"
	"github.com/allisson/credvault/internal/staff/usecase/mocks"
)

func TestStaffUseCaseWithMetrics_ExportsStatuses(t *testing.T) {
	provider, err := metrics.NewProvider("staff_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()
	bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), "staff_test")
	require.NoError(t, err)

	ctx := context.Background()
	admin := &authDomain.Actor{ID: uuid.Must(uuid.NewV7()), Role: authDomain.RoleAdmin}
	user := &authDomain.Actor{ID: uuid.Must(uuid.NewV7()), Role: authDomain.RoleUser}
	target := uuid.Must(uuid.NewV7())

	next := &mocks.MockStaffUseCase{}
	next.On("Delete", ctx, admin, target).Return(nil).Once()
	next.On("Delete", ctx, user, target).Return(authDomain.ErrAdminRequired).Once()
	next.On("UpdateRole", ctx, admin, target, authDomain.RoleAdmin).
		Return(nil, staffDomain.ErrStaffNotFound).Once()

	uc := usecase.NewStaffUseCaseWithMetrics(next, bm)
	assert.NoError(t, uc.Delete(ctx, admin, target))
	assert.ErrorIs(t, uc.Delete(ctx, user, target), authDomain.ErrAdminRequired)
	_, err = uc.UpdateRole(ctx, admin, target, authDomain.RoleAdmin)
	assert.ErrorIs(t, err, staffDomain.ErrStaffNotFound)

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	output := w.Body.String()

	assert.Regexp(t, `staff_test_operations_total\{[^}]*operation="staff_delete"[^}]*status="success"[^}]*\} 1`, output)
	assert.Regexp(t, `staff_test_operations_total\{[^}]*operation="staff_delete"[^}]*status="denied"[^}]*\} 1`, output)
	assert.Regexp(t, `staff_test_operations_total\{[^}]*operation="staff_update_role"[^}]*status="not_found"[^}]*\} 1`, output)
	next.AssertExpectations(t)
}

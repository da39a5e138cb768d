package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// assertBizMetricLine matches a metric line by name, partial labels and value.
// The exporter injects OTel scope labels, hence the regex.
func assertBizMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	pattern := name + `\{[^}]*` + labels + `[^}]*\} ` + value
	assert.Regexp(t, pattern, output)
}

func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return w.Body.String()
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: StatusSuccess},
		{name: "forbidden", err: apperrors.Wrap(apperrors.ErrForbidden, "not owner"), want: StatusDenied},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, want: StatusDenied},
		{name: "not found", err: apperrors.Wrap(apperrors.ErrNotFound, "client not found"), want: StatusNotFound},
		{name: "conflict", err: apperrors.ErrConflict, want: StatusError},
		{name: "unknown", err: errors.New("db down"), want: StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestNewBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("test_app")
	require.NoError(t, err)

	businessMetrics, err := NewBusinessMetrics(provider.MeterProvider(), "test_app")

	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	noOp := NewNoOpBusinessMetrics()

	assert.NotPanics(t, func() {
		noOp.RecordOperation(context.Background(), DomainCredential, "credential_decrypt", StatusDenied)
		noOp.RecordDuration(context.Background(), DomainCredential, "credential_decrypt", time.Second, StatusDenied)
		Observe(context.Background(), noOp, DomainClient, "client_create", time.Now(), nil)
	})
}

func TestBusinessMetrics_Exported(t *testing.T) {
	provider, err := NewProvider("credvault_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "credvault_test")
	require.NoError(t, err)

	ctx := context.Background()
	start := time.Now().Add(-25 * time.Millisecond)

	Observe(ctx, bm, DomainCredential, "credential_decrypt", start, nil)
	Observe(ctx, bm, DomainCredential, "credential_decrypt", start, nil)
	Observe(ctx, bm, DomainCredential, "credential_decrypt", start, apperrors.ErrForbidden)
	Observe(ctx, bm, DomainClient, "client_get", start, apperrors.ErrNotFound)
	bm.RecordOperation(ctx, DomainStaff, "staff_create", StatusError)

	output := scrape(t, provider)

	assertBizMetricLine(t, output, `credvault_test_operations_total`,
		`domain="credential".*operation="credential_decrypt".*status="success"`, `2`)
	assertBizMetricLine(t, output, `credvault_test_operations_total`,
		`domain="credential".*operation="credential_decrypt".*status="denied"`, `1`)
	assertBizMetricLine(t, output, `credvault_test_operations_total`,
		`domain="client".*operation="client_get".*status="not_found"`, `1`)
	assertBizMetricLine(t, output, `credvault_test_operations_total`,
		`domain="staff".*operation="staff_create".*status="error"`, `1`)

	assertBizMetricLine(t, output, `credvault_test_operation_duration_seconds_count`,
		`domain="credential".*operation="credential_decrypt".*status="success"`, `2`)
	assertBizMetricLine(t, output, `credvault_test_operation_duration_seconds_sum`,
		`domain="credential".*operation="credential_decrypt".*status="success"`, ``)
}

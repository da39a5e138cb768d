package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
)

type mockAuditSink struct {
	mock.Mock
}

func (m *mockAuditSink) Append(ctx context.Context, entry *auditDomain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	entry := auditDomain.NewEntry(
		testActor(), auditDomain.ActionDeleteCredential, auditDomain.ResourceCredential, "c-1", nil,
	)

	t.Run("Success", func(t *testing.T) {
		var buf bytes.Buffer
		sink := &mockAuditSink{}
		sink.On("Append", mock.Anything, entry).Return(nil).Once()

		NewRecorder(sink, slog.New(slog.NewJSONHandler(&buf, nil))).Record(ctx, entry)

		sink.AssertExpectations(t)
		assert.Empty(t, buf.String())
	})

	t.Run("SinkFailureIsLoggedAndDropped", func(t *testing.T) {
		var buf bytes.Buffer
		sink := &mockAuditSink{}
		sink.On("Append", mock.Anything, entry).Return(errors.New("disk full")).Once()

		// Record has no return value; this only has to not panic.
		NewRecorder(sink, slog.New(slog.NewJSONHandler(&buf, nil))).Record(ctx, entry)

		sink.AssertExpectations(t)
		assert.Contains(t, buf.String(), `"level":"WARN"`)
		assert.Contains(t, buf.String(), "failed to record audit log")
		assert.Contains(t, buf.String(), "DELETE_CREDENTIAL")
		assert.Contains(t, buf.String(), "disk full")
	})
}

// blockingSink waits for the context it was given to end, like an insert
// queued behind an exhausted connection pool.
type blockingSink struct {
	deadline bool
}

func (b *blockingSink) Append(ctx context.Context, _ *auditDomain.Entry) error {
	_, b.deadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestRecorder_BoundedAppend(t *testing.T) {
	var buf bytes.Buffer
	sink := &blockingSink{}
	recorder := NewRecorder(sink, slog.New(slog.NewJSONHandler(&buf, nil)))
	recorder.timeout = 50 * time.Millisecond
	entry := auditDomain.NewEntry(
		testActor(), auditDomain.ActionDeleteClient, auditDomain.ResourceClient, "cl-1", nil,
	)

	start := time.Now()
	recorder.Record(context.Background(), entry)

	assert.True(t, sink.deadline)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Contains(t, buf.String(), "context deadline exceeded")
}

func TestRecorder_IgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	entry := auditDomain.NewEntry(
		testActor(), auditDomain.ActionLogout, auditDomain.ResourceSystem, "", nil,
	)
	sink := &mockAuditSink{}
	sink.On("Append", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil }), entry).
		Return(nil).Once()

	NewRecorder(sink, slog.New(slog.NewTextHandler(io.Discard, nil))).Record(ctx, entry)

	sink.AssertExpectations(t)
}

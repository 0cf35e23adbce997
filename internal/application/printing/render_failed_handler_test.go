package printing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/application/printing"
	domain "github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

type recordingNotifier struct {
	notifications []printing.RenderFailedNotification
	err           error
}

func (n *recordingNotifier) NotifyRenderFailed(ctx context.Context, notification printing.RenderFailedNotification) error {
	n.notifications = append(n.notifications, notification)
	return n.err
}

func newFailedJobEvent(t *testing.T) *domain.RenderJobFailedEvent {
	t.Helper()
	job, err := domain.NewRenderJob(uuid.New(), domain.EntityTypeInvoice, "INV-0001")
	require.NoError(t, err)
	require.NoError(t, job.Start())
	require.NoError(t, job.Fail("unbalanced columns in design"))
	return domain.NewRenderJobFailedEvent(job)
}

func TestRenderFailedHandler_EventTypes(t *testing.T) {
	handler := printing.NewRenderFailedHandler(zap.NewNop())
	assert.Equal(t, []string{domain.EventTypeRenderJobFailed}, handler.EventTypes())
}

func TestRenderFailedHandler_Handle(t *testing.T) {
	t.Run("notifies about failed job", func(t *testing.T) {
		notifier := &recordingNotifier{}
		handler := printing.NewRenderFailedHandler(zap.NewNop()).WithNotifier(notifier)

		event := newFailedJobEvent(t)
		err := handler.Handle(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, notifier.notifications, 1)
		assert.Equal(t, event.JobID.String(), notifier.notifications[0].JobID)
		assert.Equal(t, "unbalanced columns in design", notifier.notifications[0].ErrorMessage)
	})

	t.Run("works without a notifier", func(t *testing.T) {
		handler := printing.NewRenderFailedHandler(zap.NewNop())

		err := handler.Handle(context.Background(), newFailedJobEvent(t))

		assert.NoError(t, err)
	})

	t.Run("notifier error does not fail handling", func(t *testing.T) {
		notifier := &recordingNotifier{err: assert.AnError}
		handler := printing.NewRenderFailedHandler(zap.NewNop()).WithNotifier(notifier)

		err := handler.Handle(context.Background(), newFailedJobEvent(t))

		assert.NoError(t, err)
		assert.Len(t, notifier.notifications, 1)
	})

	t.Run("rejects unexpected event type", func(t *testing.T) {
		handler := printing.NewRenderFailedHandler(zap.NewNop())

		event := shared.NewBaseDomainEvent(
			domain.EventTypeInvoiceDesignCreated, domain.AggregateTypeInvoiceDesign, uuid.New())
		err := handler.Handle(context.Background(), &event)

		assert.Error(t, err)
	})
}

func TestLoggingRenderFailedNotifier(t *testing.T) {
	notifier := printing.NewLoggingRenderFailedNotifier(zap.NewNop())

	err := notifier.NotifyRenderFailed(context.Background(), printing.RenderFailedNotification{
		JobID:        uuid.New().String(),
		ErrorMessage: "missing line item columns",
	})

	assert.NoError(t, err)
}

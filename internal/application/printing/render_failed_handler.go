package printing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GBR-422777/invoiceninja/internal/domain/printing"
	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// RenderFailedHandler handles RenderJobFailedEvent and notifies
// operators about failed renders
type RenderFailedHandler struct {
	logger   *zap.Logger
	notifier RenderFailedNotifier
}

// RenderFailedNotifier is the interface for notifying about failed render jobs.
// Implementations can support different notification channels (in-app, webhook, etc.)
type RenderFailedNotifier interface {
	// NotifyRenderFailed sends a notification when a render job fails
	NotifyRenderFailed(ctx context.Context, notification RenderFailedNotification) error
}

// RenderFailedNotification represents a notification about a failed render job
type RenderFailedNotification struct {
	JobID        string `json:"job_id"`
	ErrorMessage string `json:"error_message"`
}

// NewRenderFailedHandler creates a new handler for render job failed events
func NewRenderFailedHandler(logger *zap.Logger) *RenderFailedHandler {
	return &RenderFailedHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending notifications
func (h *RenderFailedHandler) WithNotifier(notifier RenderFailedNotifier) *RenderFailedHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *RenderFailedHandler) EventTypes() []string {
	return []string{printing.EventTypeRenderJobFailed}
}

// Handle processes a RenderJobFailedEvent
func (h *RenderFailedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	failedEvent, ok := event.(*printing.RenderJobFailedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", printing.EventTypeRenderJobFailed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			printing.EventTypeRenderJobFailed, event.EventType())
	}

	h.logger.Warn("render job failed",
		zap.String("job_id", failedEvent.JobID.String()),
		zap.String("error", failedEvent.ErrorMessage),
	)

	notification := RenderFailedNotification{
		JobID:        failedEvent.JobID.String(),
		ErrorMessage: failedEvent.ErrorMessage,
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyRenderFailed(ctx, notification); err != nil {
			h.logger.Error("failed to send render failed notification",
				zap.String("job_id", notification.JobID),
				zap.Error(err),
			)
			// Notification failure shouldn't fail the event handling
		}
	}

	return nil
}

// Ensure RenderFailedHandler implements shared.EventHandler
var _ shared.EventHandler = (*RenderFailedHandler)(nil)

// LoggingRenderFailedNotifier is a simple notifier that logs notifications.
// This is useful for development and testing
type LoggingRenderFailedNotifier struct {
	logger *zap.Logger
}

// NewLoggingRenderFailedNotifier creates a new logging notifier
func NewLoggingRenderFailedNotifier(logger *zap.Logger) *LoggingRenderFailedNotifier {
	return &LoggingRenderFailedNotifier{
		logger: logger,
	}
}

// NotifyRenderFailed logs the render failed notification
func (n *LoggingRenderFailedNotifier) NotifyRenderFailed(ctx context.Context, notification RenderFailedNotification) error {
	n.logger.Warn("RENDER FAILED",
		zap.String("job_id", notification.JobID),
		zap.String("error", notification.ErrorMessage),
	)
	return nil
}

// Ensure LoggingRenderFailedNotifier implements RenderFailedNotifier
var _ RenderFailedNotifier = (*LoggingRenderFailedNotifier)(nil)

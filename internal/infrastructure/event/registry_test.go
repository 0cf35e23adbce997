package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GBR-422777/invoiceninja/internal/domain/shared"
)

// mockHandler implements EventHandler for testing
type mockHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{
		eventTypes: eventTypes,
		handled:    make([]shared.DomainEvent, 0),
	}
}

func (h *mockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.handled = append(h.handled, event)
	return nil
}

func (h *mockHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("InvoiceDesignCreated", "InvoiceDesignUpdated")

	registry.Register(handler, "InvoiceDesignCreated", "InvoiceDesignUpdated")

	handlers := registry.GetHandlers("InvoiceDesignCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("InvoiceDesignUpdated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("InvoiceDesignDeleted")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_Register_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler() // No event types = wildcard

	registry.Register(handler)

	handlers := registry.GetHandlers("InvoiceDesignCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("AnyEventType")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])
}

func TestHandlerRegistry_Register_MixedTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	specificHandler := newMockHandler("InvoiceDesignCreated")
	wildcardHandler := newMockHandler()

	registry.Register(specificHandler, "InvoiceDesignCreated")
	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("InvoiceDesignCreated")
	assert.Len(t, handlers, 2)

	handlers = registry.GetHandlers("RenderJobCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, wildcardHandler, handlers[0])
}

func TestHandlerRegistry_Unregister_SpecificHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("InvoiceDesignCreated")
	handler2 := newMockHandler("InvoiceDesignCreated")

	registry.Register(handler1, "InvoiceDesignCreated")
	registry.Register(handler2, "InvoiceDesignCreated")

	handlers := registry.GetHandlers("InvoiceDesignCreated")
	assert.Len(t, handlers, 2)

	registry.Unregister(handler1)

	handlers = registry.GetHandlers("InvoiceDesignCreated")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler2, handlers[0])
}

func TestHandlerRegistry_Unregister_WildcardHandler(t *testing.T) {
	registry := NewHandlerRegistry()
	wildcardHandler := newMockHandler()

	registry.Register(wildcardHandler)

	handlers := registry.GetHandlers("AnyEvent")
	assert.Len(t, handlers, 1)

	registry.Unregister(wildcardHandler)

	handlers = registry.GetHandlers("AnyEvent")
	assert.Len(t, handlers, 0)
}

func TestHandlerRegistry_GetAllHandlers(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("InvoiceDesignCreated")
	handler2 := newMockHandler("RenderJobCreated")
	wildcardHandler := newMockHandler()

	registry.Register(handler1, "InvoiceDesignCreated")
	registry.Register(handler2, "RenderJobCreated")
	registry.Register(wildcardHandler)

	allHandlers := registry.GetAllHandlers()
	assert.Len(t, allHandlers, 3)
}

func TestHandlerRegistry_GetAllHandlers_NoDuplicates(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("InvoiceDesignCreated", "InvoiceDesignUpdated")

	// Register same handler for multiple event types
	registry.Register(handler, "InvoiceDesignCreated", "InvoiceDesignUpdated")

	allHandlers := registry.GetAllHandlers()
	assert.Len(t, allHandlers, 1)
}

package services

import (
	"selling/internal/logger"

	"go.uber.org/zap"
)

// Catalog event names.
const (
	EventProductCreated     = "product.created"
	EventProductUpdated     = "product.updated"
	EventProductDeleted     = "product.deleted"
	EventSubCategoryDeleted = "subcategory.deleted"
)

// EventPublisher publishes catalog events. pkg/rabbitmq.Client implements it.
type EventPublisher interface {
	PublishEvent(event string, payload interface{}) error
}

// publish sends an event when a publisher is configured. Failures are logged
// and never fail the request: the write is already committed.
func publish(p EventPublisher, event string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(event, payload); err != nil {
		logger.Log.Warn("failed to publish catalog event", zap.String("event", event), zap.Error(err))
	}
}

package services

import (
	"context"
	"log"
)

// Event types published after successful writes.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventUserCreated     = "user.created"
	EventUserRoleUpdated = "user.role_updated"
)

// EventPublisher delivers catalog change notifications. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// publish is best effort: a broker failure never fails the write that
// already happened.
func publish(ctx context.Context, events EventPublisher, eventType string, payload any) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

package services

import (
	"context"

	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// Change event verbs emitted for issuer and relying party mutations.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ChangePublisher notifies an external adapter when an issuer or relying
// party changes. A failed publish never fails the mutation; the adapter is
// expected to reconcile on its own schedule.
type ChangePublisher interface {
	PublishChange(ctx context.Context, entity, change string, payload interface{}) error
}

func publishChange(ctx context.Context, log *logger.Logger, publisher ChangePublisher, entity, change string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishChange(ctx, entity, change, payload); err != nil {
		log.Warn("publish change failed", "entity", entity, "change", change, "error", err)
	}
}

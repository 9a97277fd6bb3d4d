package audit

import "context"

type AuditRepository interface {
	// Append writes within the transaction carried by ctx, if any.
	Append(ctx context.Context, entry Entry) (Entry, error)
	// ListByEntity returns entries for one entity, oldest first.
	ListByEntity(ctx context.Context, entityType, entityID string) ([]Entry, error)
}

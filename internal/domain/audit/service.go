package audit

import "context"

type AuditService interface {
	// ListByEntity returns the trail of one entity, oldest first.
	ListByEntity(ctx context.Context, filter ListFilter) ([]EntryResponse, error)
}

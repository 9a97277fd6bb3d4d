package audit

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepository audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository}
}

// ListByEntity implements audit.AuditService.
func (a *AuditServiceImpl) ListByEntity(ctx context.Context, filter audit.ListFilter) ([]audit.EntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := a.AuditRepository.ListByEntity(ctx, filter.EntityType, filter.EntityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit log: %w", err)
	}

	return audit.ToResponses(entries), nil
}

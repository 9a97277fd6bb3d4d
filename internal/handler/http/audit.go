package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &AuditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler.
func (a *AuditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	entries, err := a.auditService.ListByEntity(r.Context(), audit.ListFilter{
		EntityType: query.Get("entity_type"),
		EntityID:   query.Get("entity_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

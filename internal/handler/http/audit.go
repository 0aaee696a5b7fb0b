package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

const maxAuditLogs = 500

type AuditHandler interface {
	ListLogs(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	repo audit.Repository
}

func NewAuditHandler(repo audit.Repository) AuditHandler {
	return &auditHandlerImpl{repo: repo}
}

// ListLogs returns the newest entries first, ?limit= capped at 500.
func (h *auditHandlerImpl) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := min(queryLimit(r, 100), maxAuditLogs)

	logs, err := h.repo.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]audit.LogResponse, 0, len(logs))
	for _, l := range logs {
		results = append(results, audit.NewLogResponse(l))
	}
	response.SuccessWithMeta(w, results, &response.Meta{Count: len(results), Limit: limit})
}

package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type recorder struct {
	repo audit.Repository
}

func NewRecorder(repo audit.Repository) audit.Recorder {
	return &recorder{repo: repo}
}

// Record stores one audit entry attributed to the caller in ctx. Failures are
// logged and swallowed.
func (r *recorder) Record(ctx context.Context, action audit.Action, model string, recordID string, oldData, newData any) {
	entry := audit.Log{
		Action:    action,
		Model:     model,
		RecordID:  recordID,
		OldData:   marshal(oldData),
		NewData:   marshal(newData),
		IPAddress: audit.IPAddressFromContext(ctx),
	}
	if actor, ok := user.ActorFromContext(ctx); ok {
		entry.ActorID = &actor.UserID
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "error", err, "action", action, "model", model, "record_id", recordID)
	}
}

func marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Failed to encode audit payload", "error", err)
		return nil
	}
	return b
}

package audit

import (
	"context"
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionDeactivate Action = "deactivate"
)

type Log struct {
	ID        string
	ActorID   *string
	Action    Action
	Model     string
	RecordID  string
	OldData   json.RawMessage
	NewData   json.RawMessage
	IPAddress *string
	CreatedAt time.Time
}

type LogResponse struct {
	ID        string          `json:"id"`
	ActorID   *string         `json:"actor_id,omitempty"`
	Action    string          `json:"action"`
	Model     string          `json:"model"`
	RecordID  string          `json:"record_id"`
	OldData   json.RawMessage `json:"old_data,omitempty"`
	NewData   json.RawMessage `json:"new_data,omitempty"`
	IPAddress *string         `json:"ip_address,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func NewLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:        l.ID,
		ActorID:   l.ActorID,
		Action:    string(l.Action),
		Model:     l.Model,
		RecordID:  l.RecordID,
		OldData:   l.OldData,
		NewData:   l.NewData,
		IPAddress: l.IPAddress,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

type Repository interface {
	Create(ctx context.Context, entry Log) error
	List(ctx context.Context, limit int) ([]Log, error)
}

// Recorder writes audit entries. Implementations never fail the caller.
type Recorder interface {
	Record(ctx context.Context, action Action, model string, recordID string, oldData, newData any)
}

type ipKey struct{}

// WithIPAddress stores the client address that audit entries are attributed to.
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

func IPAddressFromContext(ctx context.Context) *string {
	if ip, ok := ctx.Value(ipKey{}).(string); ok && ip != "" {
		return &ip
	}
	return nil
}

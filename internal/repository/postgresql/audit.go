package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

func (r *auditRepositoryImpl) Create(ctx context.Context, entry audit.Log) error {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, model, record_id, old_data, new_data, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = q.Exec(ctx, query,
		id,
		entry.ActorID,
		entry.Action,
		entry.Model,
		entry.RecordID,
		nullJSON(entry.OldData),
		nullJSON(entry.NewData),
		entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func (r *auditRepositoryImpl) List(ctx context.Context, limit int) ([]audit.Log, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, actor_id, action, model, record_id, old_data, new_data, ip_address, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]audit.Log, 0)
	for rows.Next() {
		var l audit.Log
		var oldData, newData []byte
		if err := rows.Scan(&l.ID, &l.ActorID, &l.Action, &l.Model, &l.RecordID, &oldData, &newData, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		l.OldData, l.NewData = oldData, newData
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// nullJSON sends an empty payload as SQL NULL rather than invalid JSON.
func nullJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}

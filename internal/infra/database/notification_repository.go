package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marketsantafe/leads-api/internal/entity"
)

var ErrNotificationNotFound = errors.New("notificación no encontrada")

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) ListByTenant(ctx context.Context, tenantID int64, unreadOnly bool) ([]entity.Notification, error) {
	query := `
		SELECT id, tenant_id, type, payload, created_at, read_at
		FROM notifications
		WHERE tenant_id = $1
	`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT 100`

	rows, err := r.DB.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("falla listando notificaciones: %w", err)
	}
	defer rows.Close()

	notifications := []entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		var payload []byte
		if err := rows.Scan(&n.ID, &n.TenantID, &n.Type, &payload, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, fmt.Errorf("falla escaneando notificación: %w", err)
		}
		n.Payload = payload
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRead exige el tenant además del id: una inmobiliaria no puede marcar
// como leída la campanita de otra aunque adivine el UUID.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, tenantID int64) error {
	query := `
		UPDATE notifications
		SET read_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND read_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/marketsantafe/leads-api/internal/entity"
)

type TenantRepository struct {
	DB *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) FindByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	query := `
		SELECT id, name, slug, COALESCE(contact_email, ''), COALESCE(phone, ''), active, created_at
		FROM tenants
		WHERE id = $1
	`

	var t entity.Tenant
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Slug, &t.ContactEmail, &t.Phone, &t.Active, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrTenantNotFound
		}
		return nil, err
	}

	return &t, nil
}

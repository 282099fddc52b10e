package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/marketsantafe/leads-api/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, tenant_id, property_id, flow_type, user_type, source, status,
	name, email, whatsapp,
	zone, property_type, budget_min, budget_max, budget, bedrooms, area_m2, condition, address,
	assigned_to_user_id, created_at, updated_at, submitted_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (tenant_id, property_id, flow_type, user_type, source, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.TenantID,
		lead.PropertyID,
		lead.FlowType,
		nullString(lead.UserType),
		nullString(lead.Source),
		lead.Status,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// FK: tenant o propiedad inexistente
			return entity.ErrTenantNotFound
		}
		log.Printf("❌ Error creando lead: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) FindDetailByID(ctx context.Context, id int64) (*entity.LeadDetail, error) {
	query := `
		SELECT ` + prefixedLeadColumns("l") + `,
			t.name, t.slug, p.title, u.name
		FROM leads l
		LEFT JOIN tenants t ON t.id = l.tenant_id
		LEFT JOIN properties p ON p.id = l.property_id
		LEFT JOIN tenant_users u ON u.id = l.assigned_to_user_id
		WHERE l.id = $1
	`

	detail, err := scanLeadDetail(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (r *LeadRepository) UpsertStep(ctx context.Context, leadID int64, stepKey, value string) error {
	query := `
		INSERT INTO lead_steps (lead_id, step_key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (lead_id, step_key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, leadID, stepKey, value)
	return err
}

// UpdateField proyecta un paso sobre su columna. column sale del schema
// estático del wizard (nunca del request), por eso el Sprintf es seguro.
func (r *LeadRepository) UpdateField(ctx context.Context, leadID int64, column string, value any) error {
	query := fmt.Sprintf(`UPDATE leads SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	_, err := r.DB.ExecContext(ctx, query, value, leadID)
	return err
}

// Submit corre la transición draft->new y el insert de la notificación en
// una sola transacción: un lead enviado SIEMPRE tiene su notificación.
func (r *LeadRepository) Submit(ctx context.Context, leadID int64, sub *entity.LeadSubmission, n *entity.Notification) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE leads SET
			name = $1, email = $2, whatsapp = $3,
			zone = $4, property_type = $5,
			budget_min = $6, budget_max = $7, budget = $8,
			bedrooms = $9, area_m2 = $10, condition = $11, address = $12,
			status = $13, submitted_at = NOW(), updated_at = NOW()
		WHERE id = $14 AND status = $15
	`

	res, err := tx.ExecContext(ctx, update,
		nullString(sub.Name),
		nullString(sub.Email),
		nullString(sub.Whatsapp),
		nullString(sub.Zone),
		nullString(sub.PropertyType),
		sub.BudgetMin,
		sub.BudgetMax,
		sub.Budget,
		sub.Bedrooms,
		sub.AreaM2,
		nullString(sub.Condition),
		nullString(sub.Address),
		entity.StatusNew,
		leadID,
		entity.StatusDraft,
	)
	if err != nil {
		return fmt.Errorf("falla actualizando lead: %w", err)
	}

	// El WHERE status = draft cubre la carrera de dos submits simultáneos:
	// sólo uno afecta la fila, el otro pierde.
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entity.ErrLeadNotFound
	}

	insert := `
		INSERT INTO notifications (id, tenant_id, type, payload, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.ExecContext(ctx, insert, n.ID, n.TenantID, n.Type, []byte(n.Payload)); err != nil {
		return fmt.Errorf("falla insertando notificación: %w", err)
	}

	return tx.Commit()
}

func (r *LeadRepository) UpdateStatusAssignment(ctx context.Context, leadID int64, status *string, assignedTo *int64) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	i := 1

	if status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", i))
		args = append(args, *status)
		i++
	}
	if assignedTo != nil {
		sets = append(sets, fmt.Sprintf("assigned_to_user_id = $%d", i))
		args = append(args, *assignedTo)
		i++
	}

	args = append(args, leadID)
	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d`, strings.Join(sets, ", "), i)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.LeadDetail, int, error) {
	where, args := buildLeadFilter(filter)

	countQuery := `SELECT COUNT(*) FROM leads l` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("falla contando leads: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := `
		SELECT ` + prefixedLeadColumns("l") + `,
			t.name, t.slug, p.title, u.name
		FROM leads l
		LEFT JOIN tenants t ON t.id = l.tenant_id
		LEFT JOIN properties p ON p.id = l.property_id
		LEFT JOIN tenant_users u ON u.id = l.assigned_to_user_id
	` + where + fmt.Sprintf(`
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.DB.QueryContext(ctx, listQuery, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("falla listando leads: %w", err)
	}
	defer rows.Close()

	leads := []entity.LeadDetail{}
	for rows.Next() {
		detail, err := scanLeadDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("falla escaneando lead: %w", err)
		}
		leads = append(leads, *detail)
	}

	return leads, total, rows.Err()
}

func buildLeadFilter(filter entity.LeadFilter) (string, []any) {
	conds := []string{}
	args := []any{}
	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.TenantID != nil {
		add("l.tenant_id = $%d", *filter.TenantID)
	}
	if filter.Status != "" {
		add("l.status = $%d", filter.Status)
	}
	if filter.FlowType != "" {
		add("l.flow_type = $%d", filter.FlowType)
	}
	if filter.UserType != "" {
		add("l.user_type = $%d", filter.UserType)
	}
	if filter.Zone != "" {
		add("l.zone ILIKE $%d", "%"+filter.Zone+"%")
	}
	if filter.PropertyID != nil {
		add("l.property_id = $%d", *filter.PropertyID)
	}
	if filter.AssignedTo != nil {
		add("l.assigned_to_user_id = $%d", *filter.AssignedTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner cubre *sql.Row y *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var l entity.Lead
	var userType, source, name, email, whatsapp, zone, propertyType, condition, address sql.NullString

	err := row.Scan(
		&l.ID, &l.TenantID, &l.PropertyID, &l.FlowType, &userType, &source, &l.Status,
		&name, &email, &whatsapp,
		&zone, &propertyType, &l.BudgetMin, &l.BudgetMax, &l.Budget, &l.Bedrooms, &l.AreaM2, &condition, &address,
		&l.AssignedToUserID, &l.CreatedAt, &l.UpdatedAt, &l.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	l.UserType = userType.String
	l.Source = source.String
	l.Name = name.String
	l.Email = email.String
	l.Whatsapp = whatsapp.String
	l.Zone = zone.String
	l.PropertyType = propertyType.String
	l.Condition = condition.String
	l.Address = address.String

	return &l, nil
}

func scanLeadDetail(row rowScanner) (*entity.LeadDetail, error) {
	var d entity.LeadDetail
	var userType, source, name, email, whatsapp, zone, propertyType, condition, address sql.NullString

	err := row.Scan(
		&d.ID, &d.TenantID, &d.PropertyID, &d.FlowType, &userType, &source, &d.Status,
		&name, &email, &whatsapp,
		&zone, &propertyType, &d.BudgetMin, &d.BudgetMax, &d.Budget, &d.Bedrooms, &d.AreaM2, &condition, &address,
		&d.AssignedToUserID, &d.CreatedAt, &d.UpdatedAt, &d.SubmittedAt,
		&d.TenantName, &d.TenantSlug, &d.PropertyTitle, &d.AssignedToName,
	)
	if err != nil {
		return nil, err
	}

	d.UserType = userType.String
	d.Source = source.String
	d.Name = name.String
	d.Email = email.String
	d.Whatsapp = whatsapp.String
	d.Zone = zone.String
	d.PropertyType = propertyType.String
	d.Condition = condition.String
	d.Address = address.String

	return &d, nil
}

func prefixedLeadColumns(alias string) string {
	cols := strings.Split(leadColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

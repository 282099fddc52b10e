package entity

import (
	"context"
	"time"
)

// Estados del ciclo de vida del lead
const (
	StatusDraft     = "draft"
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusClosed    = "closed"
	StatusDiscarded = "discarded"
)

// Flujos del wizard (intención del visitante)
const (
	FlowAlquilar = "ALQUILAR"
	FlowComprar  = "COMPRAR"
	FlowVender   = "VENDER"
	FlowTasacion = "TASACION"
	FlowContacto = "CONTACTO"
)

const (
	UserTypeBuyer  = "buyer"
	UserTypeSeller = "seller"
)

type Lead struct {
	ID         int64  `json:"id"`
	TenantID   *int64 `json:"tenant_id,omitempty"`
	PropertyID *int64 `json:"property_id,omitempty"`

	FlowType string `json:"flow_type"`
	UserType string `json:"user_type,omitempty"`
	Source   string `json:"source,omitempty"`
	Status   string `json:"status"`

	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Whatsapp string `json:"whatsapp,omitempty"`

	Zone         string   `json:"zone,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	BudgetMin    *float64 `json:"budget_min,omitempty"`
	BudgetMax    *float64 `json:"budget_max,omitempty"`
	Budget       *float64 `json:"budget,omitempty"`
	Bedrooms     *int64   `json:"bedrooms,omitempty"`
	AreaM2       *float64 `json:"area_m2,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	Address      string   `json:"address,omitempty"`

	AssignedToUserID *int64 `json:"assigned_to_user_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// IsDraft: el wizard sólo puede escribir mientras el lead sigue en draft.
// Invariante: SubmittedAt != nil <=> Status != draft.
func (l *Lead) IsDraft() bool {
	return l.Status == StatusDraft
}

func ValidFlowType(ft string) bool {
	switch ft {
	case FlowAlquilar, FlowComprar, FlowVender, FlowTasacion, FlowContacto:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusNew, StatusContacted, StatusQualified, StatusClosed, StatusDiscarded:
		return true
	}
	return false
}

// LeadStep es el registro crudo de un campo del wizard, clave única
// (lead_id, step_key). Se sobrescribe vía upsert, el core nunca lo borra.
type LeadStep struct {
	LeadID    int64     `json:"lead_id"`
	StepKey   string    `json:"step_key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadSubmission son los campos normalizados que el submit escribe de una
// sola vez sobre la fila del lead.
type LeadSubmission struct {
	Name     string
	Email    string
	Whatsapp string

	Zone         string
	PropertyType string
	BudgetMin    *float64
	BudgetMax    *float64
	Budget       *float64
	Bedrooms     *int64
	AreaM2       *float64
	Condition    string
	Address      string
}

// LeadDetail es la fila del inbox: lead + nombres resueltos por join.
type LeadDetail struct {
	Lead
	TenantName     *string `json:"tenant_name,omitempty"`
	TenantSlug     *string `json:"tenant_slug,omitempty"`
	PropertyTitle  *string `json:"property_title,omitempty"`
	AssignedToName *string `json:"assigned_to_name,omitempty"`
}

// LeadFilter parametriza las dos variantes del inbox (admin y tenant).
type LeadFilter struct {
	TenantID   *int64
	Status     string
	FlowType   string
	UserType   string
	Zone       string // substring match, sólo variante tenant
	PropertyID *int64
	AssignedTo *int64

	Page  int
	Limit int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindDetailByID(ctx context.Context, id int64) (*LeadDetail, error)

	// UpsertStep graba el valor crudo en el step log (ON CONFLICT DO UPDATE).
	UpsertStep(ctx context.Context, leadID int64, stepKey, value string) error

	// UpdateField proyecta un step conocido sobre su columna normalizada.
	// column viene SIEMPRE del schema estático del wizard, nunca del request.
	UpdateField(ctx context.Context, leadID int64, column string, value any) error

	// Submit corre la transición draft->new y el insert de la notificación
	// dentro de UNA transacción.
	Submit(ctx context.Context, leadID int64, sub *LeadSubmission, n *Notification) error

	UpdateStatusAssignment(ctx context.Context, leadID int64, status *string, assignedTo *int64) error

	List(ctx context.Context, filter LeadFilter) ([]LeadDetail, int, error)
}

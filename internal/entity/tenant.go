package entity

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrLeadNotFound   = errors.New("lead no encontrado")
	ErrTenantNotFound = errors.New("inmobiliaria no encontrada")
)

// Tenant es la inmobiliaria dueña de un subconjunto de leads. Su alta y su
// flag de activa los administra otro subsistema; acá sólo se consulta.
type Tenant struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ContactEmail string    `json:"contact_email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

type TenantRepositoryInterface interface {
	FindByID(ctx context.Context, id int64) (*Tenant, error)
}

const NotificationTypeNewLead = "new_lead"

// Notification es el registro por tenant que dispara la campanita del panel.
// El submit la inserta en la misma transacción que la transición del lead.
type Notification struct {
	ID        string          `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
}

// NewLeadPayload es el JSON que viaja dentro de la notificación new_lead.
type NewLeadPayload struct {
	LeadID   int64  `json:"lead_id"`
	FlowType string `json:"flow_type"`
	Message  string `json:"message"`
}

type NotificationRepositoryInterface interface {
	ListByTenant(ctx context.Context, tenantID int64, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, id string, tenantID int64) error
}

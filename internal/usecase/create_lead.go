package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/marketsantafe/leads-api/internal/entity"
)

type CreateLeadInput struct {
	FlowType   string `json:"flow_type"`
	TenantID   *int64 `json:"tenant_id,omitempty"`
	PropertyID *int64 `json:"property_id,omitempty"`
	UserType   string `json:"user_type,omitempty"`
	Source     string `json:"source,omitempty"`
}

type CreateLeadUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	TenantRepo entity.TenantRepositoryInterface
}

func NewCreateLeadUseCase(leadRepo entity.LeadRepositoryInterface, tenantRepo entity.TenantRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{LeadRepo: leadRepo, TenantRepo: tenantRepo}
}

// Execute abre un draft para el wizard. El tenant es opcional en esta punta
// (el flujo CONTACTO genérico arranca sin inmobiliaria), pero si viene tiene
// que existir y estar activo.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if !entity.ValidFlowType(input.FlowType) {
		return nil, &DomainError{Code: CodeInvalidFlow, Message: "flujo desconocido: " + input.FlowType}
	}

	if input.TenantID != nil {
		tenant, err := uc.TenantRepo.FindByID(ctx, *input.TenantID)
		if err != nil {
			if errors.Is(err, entity.ErrTenantNotFound) {
				return nil, notFound("inmobiliaria no encontrada")
			}
			return nil, &TechnicalError{Code: CodeDatabase, Message: "error consultando inmobiliaria: " + err.Error()}
		}
		if !tenant.Active {
			return nil, &DomainError{Code: CodeTenantInactive, Message: "la inmobiliaria no está activa"}
		}
	}

	now := time.Now()
	lead := &entity.Lead{
		TenantID:   input.TenantID,
		PropertyID: input.PropertyID,
		FlowType:   input.FlowType,
		UserType:   input.UserType,
		Source:     input.Source,
		Status:     entity.StatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "no se pudo crear el lead: " + err.Error()}
	}

	return lead, nil
}

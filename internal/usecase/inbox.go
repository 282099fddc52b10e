package usecase

import (
	"context"

	"github.com/marketsantafe/leads-api/internal/entity"
)

const (
	DefaultInboxLimit = 50
	MaxInboxLimit     = 200
)

type ListLeadsUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewListLeadsUseCase(leadRepo entity.LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{LeadRepo: leadRepo}
}

// Execute resuelve el inbox paginado. Sirve para las dos variantes: la de
// admin (sin tenant fijo) y la de inmobiliaria (TenantID obligatorio, que el
// handler ya autorizó contra el guard). Sin caché: cada llamada re-consulta.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, filter entity.LeadFilter) ([]entity.LeadDetail, Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultInboxLimit
	}
	if filter.Limit > MaxInboxLimit {
		filter.Limit = MaxInboxLimit
	}

	leads, total, err := uc.LeadRepo.List(ctx, filter)
	if err != nil {
		return nil, Pagination{}, &TechnicalError{Code: CodeDatabase, Message: "error consultando inbox: " + err.Error()}
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	return leads, Pagination{
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

type UpdateLeadInput struct {
	Status           *string `json:"status,omitempty"`
	AssignedToUserID *int64  `json:"assigned_to_user_id,omitempty"`
}

type UpdateLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewUpdateLeadUseCase(leadRepo entity.LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{LeadRepo: leadRepo}
}

// Execute aplica el PATCH restringido del panel: sólo status y asignación.
// El status no puede volver a draft ni salir de él por esta vía, porque esa
// transición es exclusiva del submit (y mantiene el invariante con
// submitted_at). El chequeo de tenant ya lo hizo el guard en el handler.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, leadID int64, input UpdateLeadInput) error {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if err == entity.ErrLeadNotFound {
			return notFound("lead no encontrado")
		}
		return &TechnicalError{Code: CodeDatabase, Message: "error buscando lead: " + err.Error()}
	}

	if input.Status == nil && input.AssignedToUserID == nil {
		return &DomainError{Code: CodeValidation, Message: "nada para actualizar", Errors: []string{"enviá status o assigned_to_user_id"}}
	}

	if input.Status != nil {
		if !entity.ValidStatus(*input.Status) || *input.Status == entity.StatusDraft {
			return &DomainError{Code: CodeValidation, Message: "status inválido", Errors: []string{"status inválido: " + *input.Status}}
		}
		if lead.IsDraft() {
			return &DomainError{Code: CodeValidation, Message: "el lead todavía es un borrador", Errors: []string{"un borrador sólo cambia de estado vía submit"}}
		}
	}

	if err := uc.LeadRepo.UpdateStatusAssignment(ctx, leadID, input.Status, input.AssignedToUserID); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "no se pudo actualizar el lead: " + err.Error()}
	}

	return nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/marketsantafe/leads-api/internal/entity"
	"github.com/marketsantafe/leads-api/internal/infra/queue"
)

type SubmitLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
	Producer QueueProducerInterface
}

func NewSubmitLeadUseCase(leadRepo entity.LeadRepositoryInterface, producer QueueProducerInterface) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{LeadRepo: leadRepo, Producer: producer}
}

// Execute cierra el wizard: valida el form según el flujo, corre la
// transición draft->new junto con el insert de la notificación en una sola
// transacción, y recién después del commit publica el evento en la cola.
// Si la cola falla el lead ya quedó enviado; se loguea y no se devuelve error.
func (uc *SubmitLeadUseCase) Execute(ctx context.Context, leadID int64, form map[string]string) (*entity.Lead, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound("lead no encontrado")
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "error buscando lead: " + err.Error()}
	}

	if !lead.IsDraft() {
		return nil, alreadySubmitted()
	}

	errs := ValidateSubmission(lead.FlowType, form)
	if lead.TenantID == nil {
		// Inbox y notificación son por tenant: sin inmobiliaria no hay envío.
		errs = append(errs, "el lead no está asociado a ninguna inmobiliaria")
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	sub := buildSubmission(form)
	message := fmt.Sprintf("Nuevo lead %s de %s", lead.FlowType, sub.Name)

	payload, _ := json.Marshal(entity.NewLeadPayload{
		LeadID:   lead.ID,
		FlowType: lead.FlowType,
		Message:  message,
	})

	notification := &entity.Notification{
		ID:        uuid.New().String(),
		TenantID:  *lead.TenantID,
		Type:      entity.NotificationTypeNewLead,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := uc.LeadRepo.Submit(ctx, lead.ID, sub, notification); err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "no se pudo enviar el lead: " + err.Error()}
	}

	if uc.Producer != nil {
		event := queue.LeadSubmittedPayload{
			LeadID:         lead.ID,
			TenantID:       *lead.TenantID,
			NotificationID: notification.ID,
			FlowType:       lead.FlowType,
			Name:           sub.Name,
			Whatsapp:       sub.Whatsapp,
			Email:          sub.Email,
			Zone:           sub.Zone,
			Message:        message,
		}
		if err := uc.Producer.PublishLeadSubmitted(ctx, event); err != nil {
			log.Printf("⚠️ lead %d enviado pero falló la cola: %v", lead.ID, err)
		}
	}

	return uc.reload(ctx, lead)
}

// reload devuelve la fila ya transicionada; si la relectura falla, arma la
// vista en memoria para no romper la respuesta por un detalle cosmético.
func (uc *SubmitLeadUseCase) reload(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	fresh, err := uc.LeadRepo.FindByID(ctx, lead.ID)
	if err != nil {
		now := time.Now()
		lead.Status = entity.StatusNew
		lead.SubmittedAt = &now
		lead.UpdatedAt = now
		return lead, nil
	}
	return fresh, nil
}

func buildSubmission(form map[string]string) *entity.LeadSubmission {
	return &entity.LeadSubmission{
		Name:         formValue(form, "nombre", "name"),
		Email:        formValue(form, "email"),
		Whatsapp:     formValue(form, "whatsapp", "telefono"),
		Zone:         formValue(form, "zona"),
		PropertyType: formValue(form, "tipo"),
		Condition:    formValue(form, "estado"),
		Address:      formValue(form, "direccion"),
		BudgetMin:    moneyValue(form, "presupuesto_min"),
		BudgetMax:    moneyValue(form, "presupuesto_max"),
		Budget:       moneyValue(form, "presupuesto"),
		AreaM2:       moneyValue(form, "m2"),
		Bedrooms:     intValue(form, "dormitorios"),
	}
}

func moneyValue(form map[string]string, key string) *float64 {
	v, ok := CoerceField(fieldSchema[key], formValue(form, key))
	if !ok || v == nil {
		return nil
	}
	f := v.(float64)
	return &f
}

func intValue(form map[string]string, key string) *int64 {
	v, ok := CoerceField(fieldSchema[key], formValue(form, key))
	if !ok || v == nil {
		return nil
	}
	n := v.(int64)
	return &n
}

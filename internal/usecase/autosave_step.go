package usecase

import (
	"context"
	"errors"

	"github.com/marketsantafe/leads-api/internal/entity"
)

type AutosaveStepUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewAutosaveStepUseCase(leadRepo entity.LeadRepositoryInterface) *AutosaveStepUseCase {
	return &AutosaveStepUseCase{LeadRepo: leadRepo}
}

// Execute persiste un paso del wizard: primero el valor crudo en el step
// log, después la proyección tipada sobre la columna del lead si la clave es
// conocida. Claves desconocidas quedan sólo en el log, sin error.
//
// Acá NO se valida el contenido: el wizard guarda lo que el visitante va
// tipeando y recién el submit decide si alcanza. Un numérico imposible de
// parsear se proyecta como NULL y listo.
func (uc *AutosaveStepUseCase) Execute(ctx context.Context, leadID int64, stepKey, value string) error {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return notFound("lead no encontrado")
		}
		return &TechnicalError{Code: CodeDatabase, Message: "error buscando lead: " + err.Error()}
	}

	// Una vez enviado, el lead queda congelado para el wizard.
	if !lead.IsDraft() {
		return alreadySubmitted()
	}

	if err := uc.LeadRepo.UpsertStep(ctx, leadID, stepKey, value); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "no se pudo guardar el paso: " + err.Error()}
	}

	spec, known := FieldSchema(stepKey)
	if !known {
		return nil
	}

	coerced, _ := CoerceField(spec, value)
	if err := uc.LeadRepo.UpdateField(ctx, leadID, spec.Column, coerced); err != nil {
		return &TechnicalError{Code: CodeDatabase, Message: "no se pudo proyectar el paso: " + err.Error()}
	}

	return nil
}

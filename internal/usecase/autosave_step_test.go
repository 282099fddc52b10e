package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marketsantafe/leads-api/internal/entity"
)

func draftLead(id int64) *entity.Lead {
	tenantID := int64(7)
	return &entity.Lead{
		ID:       id,
		TenantID: &tenantID,
		FlowType: entity.FlowAlquilar,
		Status:   entity.StatusDraft,
	}
}

func TestAutosaveStepLeadNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(99)).Return(nil, entity.ErrLeadNotFound)

	uc := NewAutosaveStepUseCase(repo)
	err := uc.Execute(context.Background(), 99, "zona", "Centro")

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)
	repo.AssertExpectations(t)
}

func TestAutosaveStepRejectsSubmittedLead(t *testing.T) {
	lead := draftLead(1)
	lead.Status = entity.StatusNew

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(lead, nil)

	uc := NewAutosaveStepUseCase(repo)
	err := uc.Execute(context.Background(), 1, "zona", "Centro")

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeAlreadySubmitted, de.Code)
	repo.AssertNotCalled(t, "UpsertStep", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutosaveStepProjectsKnownKey(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(draftLead(1), nil)
	repo.On("UpsertStep", mock.Anything, int64(1), "presupuesto", "80000,50").Return(nil)
	repo.On("UpdateField", mock.Anything, int64(1), "budget", 80000.50).Return(nil)

	uc := NewAutosaveStepUseCase(repo)
	err := uc.Execute(context.Background(), 1, "presupuesto", "80000,50")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAutosaveStepUnknownKeyOnlyLogs(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(draftLead(1), nil)
	repo.On("UpsertStep", mock.Anything, int64(1), "comentario", "busco algo luminoso").Return(nil)

	uc := NewAutosaveStepUseCase(repo)
	err := uc.Execute(context.Background(), 1, "comentario", "busco algo luminoso")

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateField", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAutosaveStepBadNumberProjectsNull(t *testing.T) {
	// El autosave es permisivo: lo imposible de parsear se proyecta como NULL
	// y el valor crudo queda igual en el step log.
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(draftLead(1), nil)
	repo.On("UpsertStep", mock.Anything, int64(1), "dormitorios", "dos").Return(nil)
	repo.On("UpdateField", mock.Anything, int64(1), "bedrooms", nil).Return(nil)

	uc := NewAutosaveStepUseCase(repo)
	err := uc.Execute(context.Background(), 1, "dormitorios", "dos")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marketsantafe/leads-api/internal/entity"
)

func TestCreateLeadInvalidFlow(t *testing.T) {
	uc := NewCreateLeadUseCase(new(MockLeadRepository), new(MockTenantRepository))

	_, err := uc.Execute(context.Background(), CreateLeadInput{FlowType: "PERMUTAR"})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeInvalidFlow, de.Code)
}

func TestCreateLeadTenantNotFound(t *testing.T) {
	tenantID := int64(42)

	tenants := new(MockTenantRepository)
	tenants.On("FindByID", mock.Anything, tenantID).Return(nil, entity.ErrTenantNotFound)

	uc := NewCreateLeadUseCase(new(MockLeadRepository), tenants)
	_, err := uc.Execute(context.Background(), CreateLeadInput{
		FlowType: entity.FlowComprar,
		TenantID: &tenantID,
	})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, de.Code)
}

func TestCreateLeadInactiveTenant(t *testing.T) {
	tenantID := int64(42)

	tenants := new(MockTenantRepository)
	tenants.On("FindByID", mock.Anything, tenantID).Return(&entity.Tenant{ID: tenantID, Active: false}, nil)

	uc := NewCreateLeadUseCase(new(MockLeadRepository), tenants)
	_, err := uc.Execute(context.Background(), CreateLeadInput{
		FlowType: entity.FlowComprar,
		TenantID: &tenantID,
	})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeTenantInactive, de.Code)
}

func TestCreateLeadOpensDraft(t *testing.T) {
	tenantID := int64(42)

	tenants := new(MockTenantRepository)
	tenants.On("FindByID", mock.Anything, tenantID).Return(&entity.Tenant{ID: tenantID, Active: true}, nil)

	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(repo, tenants)
	lead, err := uc.Execute(context.Background(), CreateLeadInput{
		FlowType: entity.FlowVender,
		TenantID: &tenantID,
		Source:   "landing",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, lead.Status)
	assert.Nil(t, lead.SubmittedAt)
	assert.Equal(t, "landing", lead.Source)
	repo.AssertExpectations(t)
}

func TestCreateLeadWithoutTenantSkipsLookup(t *testing.T) {
	tenants := new(MockTenantRepository)

	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(repo, tenants)
	lead, err := uc.Execute(context.Background(), CreateLeadInput{FlowType: entity.FlowContacto})

	assert.NoError(t, err)
	assert.Nil(t, lead.TenantID)
	tenants.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marketsantafe/leads-api/internal/entity"
)

func TestListLeadsPaginationMath(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.LeadFilter) bool {
		return f.Page == 3 && f.Limit == 10
	})).Return([]entity.LeadDetail{}, 25, nil)

	uc := NewListLeadsUseCase(repo)
	_, page, err := uc.Execute(context.Background(), entity.LeadFilter{Page: 3, Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListLeadsDefaultsAndCaps(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.LeadFilter) bool {
		return f.Page == 1 && f.Limit == DefaultInboxLimit
	})).Return([]entity.LeadDetail{}, 0, nil).Once()

	uc := NewListLeadsUseCase(repo)
	_, page, err := uc.Execute(context.Background(), entity.LeadFilter{})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages) // vacío igual reporta una página

	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.LeadFilter) bool {
		return f.Limit == MaxInboxLimit
	})).Return([]entity.LeadDetail{}, 0, nil).Once()

	_, page, err = uc.Execute(context.Background(), entity.LeadFilter{Limit: 9999})
	assert.NoError(t, err)
	assert.Equal(t, MaxInboxLimit, page.Limit)
	repo.AssertExpectations(t)
}

func TestUpdateLeadNothingToUpdate(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(draftLead(1), nil)

	uc := NewUpdateLeadUseCase(repo)
	err := uc.Execute(context.Background(), 1, UpdateLeadInput{})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, de.Code)
}

func TestUpdateLeadRejectsDraftStatus(t *testing.T) {
	lead := draftLead(1)
	lead.Status = entity.StatusNew

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(lead, nil)

	status := entity.StatusDraft
	uc := NewUpdateLeadUseCase(repo)
	err := uc.Execute(context.Background(), 1, UpdateLeadInput{Status: &status})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, de.Code)
	repo.AssertNotCalled(t, "UpdateStatusAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadRejectsStatusChangeOnDraft(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(draftLead(1), nil)

	status := entity.StatusContacted
	uc := NewUpdateLeadUseCase(repo)
	err := uc.Execute(context.Background(), 1, UpdateLeadInput{Status: &status})

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, de.Code)
	assert.Contains(t, de.Message, "borrador")
}

func TestUpdateLeadAssignsAgent(t *testing.T) {
	lead := draftLead(1)
	lead.Status = entity.StatusNew

	agentID := int64(15)

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(lead, nil)
	repo.On("UpdateStatusAssignment", mock.Anything, int64(1), (*string)(nil), &agentID).Return(nil)

	uc := NewUpdateLeadUseCase(repo)
	err := uc.Execute(context.Background(), 1, UpdateLeadInput{AssignedToUserID: &agentID})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateLeadStatusTransition(t *testing.T) {
	lead := draftLead(1)
	lead.Status = entity.StatusNew

	status := entity.StatusQualified

	repo := new(MockLeadRepository)
	repo.On("FindByID", mock.Anything, int64(1)).Return(lead, nil)
	repo.On("UpdateStatusAssignment", mock.Anything, int64(1), &status, (*int64)(nil)).Return(nil)

	uc := NewUpdateLeadUseCase(repo)
	err := uc.Execute(context.Background(), 1, UpdateLeadInput{Status: &status})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

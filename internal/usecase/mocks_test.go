package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/marketsantafe/leads-api/internal/entity"
	"github.com/marketsantafe/leads-api/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindDetailByID(ctx context.Context, id int64) (*entity.LeadDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadDetail), args.Error(1)
}

func (m *MockLeadRepository) UpsertStep(ctx context.Context, leadID int64, stepKey, value string) error {
	args := m.Called(ctx, leadID, stepKey, value)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateField(ctx context.Context, leadID int64, column string, value any) error {
	args := m.Called(ctx, leadID, column, value)
	return args.Error(0)
}

func (m *MockLeadRepository) Submit(ctx context.Context, leadID int64, sub *entity.LeadSubmission, n *entity.Notification) error {
	args := m.Called(ctx, leadID, sub, n)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatusAssignment(ctx context.Context, leadID int64, status *string, assignedTo *int64) error {
	args := m.Called(ctx, leadID, status, assignedTo)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.LeadDetail, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entity.LeadDetail), args.Int(1), args.Error(2)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tenant), args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadSubmitted(ctx context.Context, payload queue.LeadSubmittedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

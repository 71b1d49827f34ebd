// Package mocks provides testify mocks for the service-layer contracts.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/skarim/finledger/pkg/dto"
	"github.com/skarim/finledger/pkg/repository"
)

// MockTransactionRepository is a mock for repository.Transaction.
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates the mock and registers expectation
// assertion on test cleanup.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	args := m.Called(ctx, id)
	if tx := args.Get(0); tx != nil {
		return tx.(*dto.TransactionRead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) GetActive(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	args := m.Called(ctx, id)
	if tx := args.Get(0); tx != nil {
		return tx.(*dto.TransactionRead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) FindExisting(ctx context.Context, pairs []repository.DateDescription) ([]*dto.TransactionRead, error) {
	args := m.Called(ctx, pairs)
	if txs := args.Get(0); txs != nil {
		return txs.([]*dto.TransactionRead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	args := m.Called(ctx, create)
	return args.Error(0)
}

func (m *MockTransactionRepository) CreateMany(ctx context.Context, creates []dto.TransactionCreate) error {
	args := m.Called(ctx, creates)
	return args.Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockTransactionRepository) SoftDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListActive(ctx context.Context, params repository.ListParams) ([]*dto.TransactionRead, int64, error) {
	args := m.Called(ctx, params)
	var txs []*dto.TransactionRead
	if v := args.Get(0); v != nil {
		txs = v.([]*dto.TransactionRead)
	}
	return txs, args.Get(1).(int64), args.Error(2)
}

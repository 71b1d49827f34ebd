package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockRateSource is a mock for provider.RateSource.
type MockRateSource struct {
	mock.Mock
}

// NewMockRateSource creates the mock and registers expectation assertion
// on test cleanup.
func NewMockRateSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRateSource {
	m := &MockRateSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRateSource) GetRate(ctx context.Context, from, to string, date time.Time) (float64, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(float64), args.Error(1)
}

package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check.
type MockCheck struct {
	mock.Mock
}

func (m *MockCheck) Name() string {
	return m.Called().String(0)
}

func (m *MockCheck) Category() string {
	return m.Called().String(0)
}

func (m *MockCheck) Run(ctx context.Context) *CheckResult {
	res, _ := m.Called(ctx).Get(0).(*CheckResult)
	return res
}

func newMockCheck(name string, result *CheckResult) *MockCheck {
	m := &MockCheck{}
	m.On("Name").Return(name).Maybe()
	m.On("Category").Return("test").Maybe()
	m.On("Run", mock.Anything).Return(result)
	return m
}

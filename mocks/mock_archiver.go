package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockArchiver is a mock implementation of port.Archiver.
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, issueDate string, paths ...string) ([]string, error) {
	args := m.Called(ctx, issueDate, paths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

package mocks

import (
	"github.com/stretchr/testify/mock"

	"firsgate/internal/domain"
)

// MockArtifactStore is a mock implementation of port.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) SaveJSON(signedIRN string, inv domain.Invoice) (string, error) {
	args := m.Called(signedIRN, inv)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) SaveEncrypted(signedIRN, encrypted string) (string, error) {
	args := m.Called(signedIRN, encrypted)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) GenerateQR(signedIRN, encrypted string) (string, error) {
	args := m.Called(signedIRN, encrypted)
	return args.String(0), args.Error(1)
}

func (m *MockArtifactStore) FindEncryptedPath(signedIRN string) (string, bool) {
	args := m.Called(signedIRN)
	return args.String(0), args.Bool(1)
}

func (m *MockArtifactStore) FindQRPath(signedIRN string) (string, bool) {
	args := m.Called(signedIRN)
	return args.String(0), args.Bool(1)
}

func (m *MockArtifactStore) Download(signedIRN string, t domain.DownloadType) (*domain.Download, error) {
	args := m.Called(signedIRN, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Download), args.Error(1)
}

func (m *MockArtifactStore) Dirs() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

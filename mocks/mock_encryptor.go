package mocks

import "github.com/stretchr/testify/mock"

// MockEncryptor is a mock implementation of port.Encryptor.
type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) Encrypt(irn, signedIRN string) (string, error) {
	args := m.Called(irn, signedIRN)
	return args.String(0), args.Error(1)
}

func (m *MockEncryptor) SelfTest() error {
	args := m.Called()
	return args.Error(0)
}

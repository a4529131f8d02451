package services

import (
	"github.com/stretchr/testify/mock"
)

// MockRecordCounter is a mock for the RecordCounter interface
type MockRecordCounter struct {
	mock.Mock
}

// Records returns the mocked record count
func (m *MockRecordCounter) Records() int {
	args := m.Called()
	return args.Int(0)
}

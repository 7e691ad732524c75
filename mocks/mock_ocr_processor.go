package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
	"refinery/internal/port"
)

// MockOcrProcessor is a mock implementation of port.OcrProcessor.
type MockOcrProcessor struct {
	mock.Mock
}

func (m *MockOcrProcessor) ProcessURL(ctx context.Context, url string) (*domain.OcrResult, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrResult), args.Error(1)
}

func (m *MockOcrProcessor) ProcessFile(ctx context.Context, file port.FileInput) (*domain.OcrResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OcrResult), args.Error(1)
}

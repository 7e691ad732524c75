package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
	"refinery/internal/service"
)

// MockRefineService is a mock implementation of service.RefineService.
type MockRefineService struct {
	mock.Mock
}

func (m *MockRefineService) RefineURL(ctx context.Context, input service.RefineURLInput) (*domain.Refinement, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

func (m *MockRefineService) RefineUpload(ctx context.Context, input service.RefineUploadInput) (*domain.Refinement, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

func (m *MockRefineService) RefineS3(ctx context.Context, input service.RefineS3Input) (*domain.Refinement, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfdocx/internal/model"
	"pdfdocx/internal/repository"
)

type MockConversionRepository struct {
	mock.Mock
}

func (m *MockConversionRepository) Create(ctx context.Context, rec *model.ConversionRecord) (*model.ConversionRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConversionRecord), args.Error(1)
}

func (m *MockConversionRepository) FindByID(ctx context.Context, id string) (*model.ConversionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConversionRecord), args.Error(1)
}

func (m *MockConversionRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ConversionRecord], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ConversionRecord]), args.Error(1)
}

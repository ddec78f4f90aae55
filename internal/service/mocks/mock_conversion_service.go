package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"pdfdocx/internal/model"
	"pdfdocx/internal/service"
)

type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, doc model.UploadedDocument, req model.ConversionRequest) (*model.ConversionResult, error) {
	args := m.Called(ctx, doc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConversionResult), args.Error(1)
}

func (m *MockConversionService) Inspect(ctx context.Context, data []byte) (*model.DocumentInfo, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentInfo), args.Error(1)
}

func (m *MockConversionService) History(ctx context.Context, limit, offset int) (*service.ConversionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConversionListResult), args.Error(1)
}

func (m *MockConversionService) Record(ctx context.Context, id string) (*model.ConversionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConversionRecord), args.Error(1)
}

func (m *MockConversionService) OpenResult(ctx context.Context, id string) (io.ReadCloser, *model.ConversionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*model.ConversionRecord), args.Error(2)
}

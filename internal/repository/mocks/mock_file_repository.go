package mocks

import (
	"context"

	"cdnupload/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFileRecordRepository struct {
	mock.Mock
}

func (m *MockFileRecordRepository) Create(ctx context.Context, rec *model.FileRecord) (*model.FileRecord, error) {
	args := m.Called(ctx, rec)
	if f, ok := args.Get(0).(func(context.Context, *model.FileRecord) *model.FileRecord); ok {
		return f(ctx, rec), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileRecord), args.Error(1)
}

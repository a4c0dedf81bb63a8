package mocks

import (
	"context"
	"io"
	"time"

	"userapi/internal/model"
	"userapi/internal/service"
	"userapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Create(ctx context.Context, name string, file *service.FileUpload) (*model.User, error) {
	args := m.Called(ctx, name, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateName(ctx context.Context, id, name string) (*model.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Download(ctx context.Context, blobID string) (io.ReadCloser, storage.ObjectInfo, string, error) {
	args := m.Called(ctx, blobID)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.ObjectInfo), args.String(2), args.Error(3)
}

func (m *MockUserService) PresignDownload(ctx context.Context, blobID string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, blobID, expiry)
	return args.String(0), args.Error(1)
}

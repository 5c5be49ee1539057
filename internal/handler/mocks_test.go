package handlers_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"lifeblog/internal/models"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, input models.PostInput) (*models.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, postID string, input models.PostInput) error {
	args := m.Called(ctx, postID, input)
	return args.Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadCoverImage(ctx context.Context, file io.Reader) (*models.StoredImage, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredImage), args.Error(1)
}

type MockTablesRepository struct {
	mock.Mock
}

func (m *MockTablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTablesRepository) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Resolve(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return "https://cdn.example.com/cover-image/" + key, true
}

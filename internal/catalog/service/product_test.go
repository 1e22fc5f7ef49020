package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

// --- Mock Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Publisher ---

type mockProductPublisher struct {
	mock.Mock
}

func (m *mockProductPublisher) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductPublisher) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductPublisher) PublishProductDeleted(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProductService(repo *mockProductRepository, pub *mockProductPublisher) *ProductService {
	return NewProductService(repo, pub, newTestLogger())
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }
func boolPtr(b bool) *bool    { return &b }

// --- Tests ---

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	pub.On("PublishProductCreated", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	input := &domain.CreateProductInput{
		Name:        "Linen Summer Dress",
		Description: "Lightweight linen dress",
		Category:    "Ladies Wear",
		Price:       4500,
		Sizes:       []string{"S", "M"},
	}

	product, err := svc.CreateProduct(ctx, input)

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "linen-summer-dress", product.Slug)
	assert.Equal(t, "USD", product.Currency)
	assert.True(t, product.IsActive)
	assert.Equal(t, int64(4500), product.Price)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestCreateProduct_MissingName(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductInput{
		Category: "Men",
		Price:    1000,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)

	_, err := svc.CreateProduct(context.Background(), &domain.CreateProductInput{
		Name:     "Thing",
		Category: "Men",
		Price:    -100,
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProduct_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	pub.On("PublishProductCreated", ctx, mock.AnythingOfType("*domain.Product")).
		Return(assert.AnError)

	product, err := svc.CreateProduct(ctx, &domain.CreateProductInput{
		Name:     "Canvas Tote",
		Category: "Accessories",
		Price:    1500,
	})

	require.NoError(t, err)
	assert.NotNil(t, product)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	_, err := svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListProducts_ClampsPagination(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	expected := repository.ProductFilter{Page: 1, PerPage: 100}
	repo.On("List", ctx, expected).Return([]domain.Product{}, 0, nil)

	_, _, err := svc.ListProducts(ctx, repository.ProductFilter{Page: 0, PerPage: 500})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStorefrontList_AppliesDisplayPipeline(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	repo.On("ListActive", ctx).Return([]domain.Product{
		{ID: "a", Name: "Wool Scarf", Category: "Accessories", Price: 3000},
		{ID: "b", Name: "Ankle Boots", Category: "Shoes", Price: 9000},
		{ID: "c", Name: "Beanie", Category: "Accessories", Price: 1200},
	}, nil)

	result, err := svc.StorefrontList(ctx, domain.FilterParams{
		Category: "Accessories",
		Sort:     domain.SortPriceAsc,
	})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "c", result[0].ID)
	assert.Equal(t, "a", result[1].ID)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	existing := &domain.Product{
		ID:       "prod-1",
		Name:     "Old Name",
		Slug:     "old-name",
		Category: "Men",
		Price:    2000,
		Currency: "USD",
		IsActive: true,
	}

	repo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)
	pub.On("PublishProductUpdated", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	updated, err := svc.UpdateProduct(ctx, "prod-1", &domain.UpdateProductInput{
		Name:  strPtr("New Name"),
		Price: int64Ptr(2500),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	assert.Equal(t, int64(2500), updated.Price)
	assert.Equal(t, "Men", updated.Category)
	repo.AssertExpectations(t)
}

func TestUpdateProduct_InvalidRating(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1", Name: "Thing", Category: "Men"}
	repo.On("GetByID", ctx, "prod-1").Return(existing, nil)

	rating := 7.5
	_, err := svc.UpdateProduct(ctx, "prod-1", &domain.UpdateProductInput{Rating: &rating})

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update")
}

func TestDeleteProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	existing := &domain.Product{ID: "prod-1"}
	repo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	repo.On("Delete", ctx, "prod-1").Return(nil)
	pub.On("PublishProductDeleted", ctx, "prod-1").Return(nil)

	err := svc.DeleteProduct(ctx, "prod-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	pub := new(mockProductPublisher)
	svc := newTestProductService(repo, pub)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	err := svc.DeleteProduct(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}

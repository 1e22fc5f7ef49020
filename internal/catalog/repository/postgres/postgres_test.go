package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var productCols = []string{
	"id", "name", "slug", "description", "category", "category_id", "brand_id",
	"price", "currency", "rating", "sizes", "colors", "image_url", "is_active",
	"created_at", "updated_at",
}

var productColsWithCount = append(append([]string{}, productCols...), "total_count")

func sampleProduct() domain.Product {
	return domain.Product{
		ID:          "prod-1",
		Name:        "Classic White T-Shirt",
		Slug:        "classic-white-t-shirt",
		Description: "Soft cotton tee",
		Category:    "Men",
		CategoryID:  strPtr("cat-1"),
		BrandID:     strPtr("brand-1"),
		Price:       2500,
		Currency:    "USD",
		Rating:      4.5,
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"white"},
		ImageURL:    "https://cdn.example.com/tee.jpg",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.Name, p.Slug, p.Description, p.Category, p.CategoryID, p.BrandID,
		p.Price, p.Currency, p.Rating, p.Sizes, p.Colors, p.ImageURL, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// ProductRepository
// ---------------------------------------------------------------------------

func TestProductRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(productRow(p)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(productRow(p)...).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs(p.ID).
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(productRow(p)...))

	result, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, result.ID)
	assert.Equal(t, p.Name, result.Name)
	assert.Equal(t, p.Price, result.Price)
	assert.Equal(t, p.Sizes, result.Sizes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySlug_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE slug").
		WithArgs(p.Slug).
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(productRow(p)...))

	result, err := repo.GetBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	row := append(productRow(p), 1) // total_count = 1

	mock.ExpectQuery("SELECT .+ FROM products").
		WithArgs(20, 0). // limit, offset
		WillReturnRows(pgxmock.NewRows(productColsWithCount).AddRow(row...))

	products, total, err := repo.List(context.Background(), repository.ProductFilter{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, p.ID, products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_WithFilters(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	row := append(productRow(p), 1)

	active := true
	filter := repository.ProductFilter{
		Category: strPtr("Men"),
		Active:   &active,
		Search:   strPtr("shirt"),
		Page:     2,
		PerPage:  10,
	}

	// category=$1, is_active=$2, search=$3, LIMIT $4 OFFSET $5
	mock.ExpectQuery("SELECT .+ FROM products").
		WithArgs("Men", true, "%shirt%", 10, 10).
		WillReturnRows(pgxmock.NewRows(productColsWithCount).AddRow(row...))

	products, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListActive_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE is_active").
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(productRow(p)...))

	products, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(
			p.ID, p.Name, p.Slug, p.Description, p.Category, p.CategoryID, p.BrandID,
			p.Price, p.Currency, p.Rating, p.Sizes, p.Colors, p.ImageURL, p.IsActive,
			p.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("prod-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// CategoryRepository
// ---------------------------------------------------------------------------

var categoryCols = []string{
	"id", "name", "slug", "sort_order", "is_active", "image_url", "created_at", "updated_at",
}

func sampleCategory() domain.Category {
	return domain.Category{
		ID:        "cat-1",
		Name:      "Ladies Wear",
		Slug:      "ladies-wear",
		SortOrder: 1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func categoryRow(c domain.Category) []any {
	return []any{c.ID, c.Name, c.Slug, c.SortOrder, c.IsActive, c.ImageURL, c.CreatedAt, c.UpdatedAt}
}

func TestCategoryRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	c := sampleCategory()
	mock.ExpectExec("INSERT INTO categories").
		WithArgs(categoryRow(c)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM categories WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListActive_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewCategoryRepository(mock)

	c := sampleCategory()
	mock.ExpectQuery("SELECT .+ FROM categories WHERE is_active").
		WillReturnRows(pgxmock.NewRows(categoryCols).AddRow(categoryRow(c)...))

	categories, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	assert.Equal(t, c.Name, categories[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// BannerRepository
// ---------------------------------------------------------------------------

var bannerCols = []string{
	"id", "title", "subtitle", "image_url", "video_url", "link_url", "position",
	"sort_order", "is_active", "starts_at", "ends_at", "created_at", "updated_at",
}

func sampleBanner() domain.Banner {
	return domain.Banner{
		ID:        "banner-1",
		Title:     "Summer Drop",
		ImageURL:  "https://cdn.example.com/banner.jpg",
		LinkURL:   "/collections/summer",
		Position:  domain.BannerPositionHero,
		SortOrder: 1,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func bannerRow(b domain.Banner) []any {
	return []any{
		b.ID, b.Title, b.Subtitle, b.ImageURL, b.VideoURL, b.LinkURL, b.Position,
		b.SortOrder, b.IsActive, b.StartsAt, b.EndsAt, b.CreatedAt, b.UpdatedAt,
	}
}

func TestBannerRepository_ListActive_FiltersByPosition(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBannerRepository(mock)

	b := sampleBanner()
	mock.ExpectQuery("SELECT .+ FROM banners").
		WithArgs(domain.BannerPositionHero).
		WillReturnRows(pgxmock.NewRows(bannerCols).AddRow(bannerRow(b)...))

	banners, err := repo.ListActive(context.Background(), domain.BannerPositionHero)
	require.NoError(t, err)
	assert.Len(t, banners, 1)
	assert.Equal(t, domain.BannerPositionHero, banners[0].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBannerRepository(mock)

	b := sampleBanner()
	mock.ExpectExec("UPDATE banners").
		WithArgs(
			b.ID, b.Title, b.Subtitle, b.ImageURL, b.VideoURL, b.LinkURL, b.Position,
			b.SortOrder, b.IsActive, b.StartsAt, b.EndsAt, b.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &b)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// BrandRepository
// ---------------------------------------------------------------------------

func TestBrandRepository_ListAll_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewBrandRepository(mock)

	brandCols := []string{"id", "name", "slug", "logo_url", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .+ FROM brands").
		WillReturnRows(
			pgxmock.NewRows(brandCols).
				AddRow("brand-1", "Acme", "acme", nil, now, now).
				AddRow("brand-2", "Zenith", "zenith", nil, now, now),
		)

	brands, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "Acme", brands[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

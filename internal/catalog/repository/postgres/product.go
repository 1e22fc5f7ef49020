package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/catalog/repository"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

const productColumns = `id, name, slug, description, category, category_id, brand_id, price, currency, rating, sizes, colors, image_url, is_active, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Category, p.CategoryID, p.BrandID,
		p.Price, p.Currency, p.Rating, p.Sizes, p.Colors, p.ImageURL, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`
	return r.scanProduct(ctx, query, slug)
}

// List returns products matching the filter with the total count.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *filter.Category)
		argIndex++
	}

	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("brand_id = $%d", argIndex))
		args = append(args, *filter.BrandID)
		argIndex++
	}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *filter.Active)
		argIndex++
	}

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() yields the total count in the same query.
	query := fmt.Sprintf(`
		SELECT `+productColumns+`, count(*) OVER() AS total_count
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.CategoryID, &p.BrandID,
			&p.Price, &p.Currency, &p.Rating, &p.Sizes, &p.Colors, &p.ImageURL, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}

// ListActive returns every active product, newest first.
func (r *ProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.CategoryID, &p.BrandID,
			&p.Price, &p.Currency, &p.Rating, &p.Sizes, &p.Colors, &p.ImageURL, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// Update modifies an existing product.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, category = $5, category_id = $6,
		    brand_id = $7, price = $8, currency = $9, rating = $10, sizes = $11,
		    colors = $12, image_url = $13, is_active = $14, updated_at = $15
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Category, p.CategoryID, p.BrandID,
		p.Price, p.Currency, p.Rating, p.Sizes, p.Colors, p.ImageURL, p.IsActive,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug", p.Slug)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

func (r *ProductRepository) scanProduct(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.CategoryID, &p.BrandID,
		&p.Price, &p.Currency, &p.Rating, &p.Sizes, &p.Colors, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// isUniqueViolation reports whether the error is a 23505 unique constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

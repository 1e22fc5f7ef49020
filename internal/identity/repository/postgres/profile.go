package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	"github.com/QwabenaBoateng/Angiesplug/pkg/database"
	apperrors "github.com/QwabenaBoateng/Angiesplug/pkg/errors"
)

// ProfileRepository implements repository.ProfileRepository using PostgreSQL.
// Roles live in a separate role_permissions table; a user without a row there
// gets the default role rather than an error.
type ProfileRepository struct {
	pool database.DBTX
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool database.DBTX) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileSelect = `
	SELECT p.id, p.email, COALESCE(rp.role, 'user'), p.first_name, p.last_name,
	       p.password_hash, p.created_at, p.updated_at
	FROM profiles p
	LEFT JOIN role_permissions rp ON rp.user_id = p.id`

// Create inserts a new profile row.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, first_name, last_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Email, p.FirstName, p.LastName, p.PasswordHash, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("profile", "email", p.Email)
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by user ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.scanProfile(ctx, profileSelect+` WHERE p.id = $1`, id)
}

// GetByEmail retrieves a profile by email address.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.scanProfile(ctx, profileSelect+` WHERE p.email = $1`, email)
}

// List returns profiles with the total count.
func (r *ProfileRepository) List(ctx context.Context, page, perPage int) ([]domain.Profile, int, error) {
	if perPage <= 0 {
		perPage = 20
	}
	offset := 0
	if page > 1 {
		offset = (page - 1) * perPage
	}

	query := profileSelect + `, count(*) OVER() AS total_count
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, perPage, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var (
		profiles   []domain.Profile
		totalCount int
	)

	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Role, &p.FirstName, &p.LastName,
			&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, totalCount, nil
}

// UpdateRole upserts the role assignment for a user.
func (r *ProfileRepository) UpdateRole(ctx context.Context, userID, role string) error {
	query := `
		INSERT INTO role_permissions (user_id, role, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}

	return nil
}

func (r *ProfileRepository) scanProfile(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Email, &p.Role, &p.FirstName, &p.LastName,
		&p.PasswordHash, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("profile", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

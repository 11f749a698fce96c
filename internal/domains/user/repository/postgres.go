package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	user "sportify-backend/internal/domains/user"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Querier = (*pgxpool.Pool)(nil)

type postgresRepository struct {
	db Querier
}

func NewPostgresRepository(db Querier) user.ProfileRepository {
	return &postgresRepository{db: db}
}

// GetRole returns the role column of the caller's row.
func (r *postgresRepository) GetRole(ctx context.Context, id string) (user.Role, error) {
	query := `SELECT role FROM users WHERE id = $1`

	var role string
	err := r.db.QueryRow(ctx, query, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", user.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get role: %w", err)
	}

	return user.Role(role), nil
}

// UpsertProfile is keyed on the identity id, so it does not matter whether the
// signup trigger already wrote the row.
func (r *postgresRepository) UpsertProfile(ctx context.Context, p *user.Profile) error {
	query := `
		INSERT INTO users (id, email, name, user_type, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email      = EXCLUDED.email,
			name       = EXCLUDED.name,
			user_type  = EXCLUDED.user_type,
			role       = EXCLUDED.role,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.Email,
		p.Name,
		string(p.UserType),
		string(p.Role),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

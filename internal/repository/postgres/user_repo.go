package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventradar/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a UserRepository reading the identity store's users table.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, display_name, photo_url, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	var displayName, photoURL, email sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&u.ID, &displayName, &photoURL, &email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.DisplayName = displayName.String
	u.PhotoURL = photoURL.String
	u.Email = email.String
	return u, nil
}

package repository

import (
	"context"

	"github.com/segyhp/rental-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &user, query, id); err != nil {
		return nil, err
	}

	return &user, nil
}

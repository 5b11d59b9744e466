package db

import (
	"context"

	"priceoffers/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// User (Пользователь)

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	query := `
        INSERT INTO users (id, name, email, password_hash, salt)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	err := s.conn(ctx).QueryRowxContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Salt).
		Scan(&u.CreatedAt)
	return mapErr(err)
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, name, email, password_hash, salt, created_at FROM users WHERE id=$1`
	if err := sqlx.GetContext(ctx, s.conn(ctx), u, query, id); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (s *Storage) UpdateUserName(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE users SET name=$1 WHERE id=$2`
	return expectOne(s.conn(ctx).ExecContext(ctx, query, name, id))
}

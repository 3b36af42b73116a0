package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mvillagra/gradebook-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	var user model.User
	query := `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.NewNotFound("user not found")
		}
		return model.User{}, translateError(err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	ctx, cancel := r.db.opCtx(ctx)
	defer cancel()

	query := `INSERT INTO users (id, email, password_hash)
			  VALUES ($1, $2, $3)
			  RETURNING id, email, password_hash, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query, user.ID, user.Email, user.PasswordHash).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.PasswordHash, &savedUser.CreatedAt,
	)
	if err != nil {
		return model.User{}, translateError(err)
	}

	return savedUser, nil
}

package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"avtovybor/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`
		SELECT id, email, password_hash, created_at
		FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, r.DB.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`), email)
	return n > 0, err
}

// Create stores a user with an already hashed password.
func (r *UserRepo) Create(ctx context.Context, email, hash string) error {
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`INSERT INTO users(email, password_hash) VALUES(?, ?)`), email, hash)
	return err
}

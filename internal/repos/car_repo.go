package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"avtovybor/internal/domain"
)

type CarRepo struct{ db *sqlx.DB }

func NewCarRepo(db *sqlx.DB) *CarRepo { return &CarRepo{db: db} }

func (r *CarRepo) List(ctx context.Context, limit, offset int) ([]domain.Car, error) {
	out := []domain.Car{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT id, brand, model, year, mileage, price, image, description
		FROM cars
		ORDER BY brand, model
		LIMIT ? OFFSET ?`), limit, offset)
	return out, err
}

func (r *CarRepo) Get(ctx context.Context, id string) (domain.Car, error) {
	var c domain.Car
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
		SELECT id, brand, model, year, mileage, price, image, description
		FROM cars
		WHERE id = ?`), id)
	return c, err
}

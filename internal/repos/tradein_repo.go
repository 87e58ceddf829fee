package repos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"avtovybor/internal/config"
	"avtovybor/internal/domain"
)

type TradeInRepo struct{ db *sqlx.DB }

func NewTradeInRepo(db *sqlx.DB) *TradeInRepo { return &TradeInRepo{db: db} }

// Insert appends one request and returns its generated id. There is no
// uniqueness constraint: the same payload twice yields two rows.
func (r *TradeInRepo) Insert(ctx context.Context, req domain.TradeInRequest) (int64, error) {
	const q = `
	  INSERT INTO tradein_requests
	    (car_brand, car_model, year, mileage, phone, user_email, estimated_price)
	  VALUES
	    (?,         ?,         ?,    ?,       ?,     ?,          ?)`
	args := []any{req.Make, req.Model, req.Year, req.Mileage, req.Phone, req.UserEmail, req.EstimatedPrice}

	// pgx has no LastInsertId
	if r.db.DriverName() == config.DriverPostgres {
		var id int64
		err := r.db.QueryRowxContext(ctx, r.db.Rebind(q+` RETURNING id`), args...).Scan(&id)
		return id, err
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *TradeInRepo) Get(ctx context.Context, id int64) (domain.TradeInRequest, error) {
	var t domain.TradeInRequest
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`
		SELECT id, car_brand, car_model, year, mileage, phone, user_email, estimated_price, created_at
		FROM tradein_requests
		WHERE id = ?`), id)
	return t, err
}

func (r *TradeInRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tradein_requests`)
	return n, err
}

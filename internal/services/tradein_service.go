package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"avtovybor/internal/domain"
	applog "avtovybor/internal/log"
	"avtovybor/internal/notify"
	"avtovybor/internal/quote"
	"avtovybor/internal/repos"
	"avtovybor/internal/validate"
)

// ErrStore marks a datastore failure. Its wrapped detail is for logs only.
var ErrStore = errors.New("trade-in store unavailable")

const publishTimeout = 2 * time.Second

type TradeInService struct {
	Repo *repos.TradeInRepo
	Pub  notify.Publisher
	// Timeout bounds the insert; zero means no bound beyond ctx.
	Timeout time.Duration
}

func NewTradeInService(repo *repos.TradeInRepo, pub notify.Publisher, timeout time.Duration) *TradeInService {
	if pub == nil {
		pub = notify.Nop{}
	}
	return &TradeInService{Repo: repo, Pub: pub, Timeout: timeout}
}

// Submit validates the payload, prices it and appends one row. Validation
// failures return *validate.Error before the datastore is touched; store
// failures wrap ErrStore. Nothing is retried.
func (s *TradeInService) Submit(ctx context.Context, in validate.TradeInInput) (domain.TradeInRequest, error) {
	req, err := validate.TradeIn(in)
	if err != nil {
		return domain.TradeInRequest{}, err
	}
	req.EstimatedPrice = quote.Compute(req.Year, req.Mileage).FinalPrice

	insertCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		insertCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	id, err := s.Repo.Insert(insertCtx, req)
	if err != nil {
		return domain.TradeInRequest{}, fmt.Errorf("%w: %w", ErrStore, err)
	}
	req.ID = id

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.Pub.Publish(pubCtx, notify.NewEvent(req)); err != nil {
		applog.Error(nil, "tradein.publish.fail", err, map[string]any{"request_id": id})
	}
	return req, nil
}

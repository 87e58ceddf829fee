package handlers

import (
	"avtovybor/internal/config"
	"avtovybor/internal/notify"
	"avtovybor/internal/repos"
	"avtovybor/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler    *AuthHandler
	TradeInHandler *TradeInHandler
	CatalogHandler *CatalogHandler
	ProductHandler *ProductHandler
	PageHandler    *PageHandler
	HealthHandler  *HealthHandler
}

// NewDeps wires repositories and services over the shared pool.
func NewDeps(db *sqlx.DB, cfg config.Config, pub notify.Publisher) *Deps {
	userRepo := repos.NewUserRepo(db)
	tradeRepo := repos.NewTradeInRepo(db)
	carRepo := repos.NewCarRepo(db)

	authSvc := &services.AuthService{Users: userRepo, Cost: cfg.BcryptCost}
	tradeSvc := services.NewTradeInService(tradeRepo, pub, cfg.DB.QueryTimeout)
	catalogSvc := services.NewCatalogService(carRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		TradeInHandler: &TradeInHandler{TradeIn: tradeSvc},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		PageHandler:    &PageHandler{Catalog: catalogSvc},
		HealthHandler:  &HealthHandler{DB: db},
	}
}

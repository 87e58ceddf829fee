package services

import (
	"context"

	"avtovybor/internal/domain"
	"avtovybor/internal/repos"
)

type CatalogService struct {
	Cars *repos.CarRepo
}

func NewCatalogService(cars *repos.CarRepo) *CatalogService {
	return &CatalogService{Cars: cars}
}

func (s *CatalogService) ListCars(ctx context.Context, page, pageSize int) ([]domain.Car, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 24
	}
	offset := (page - 1) * pageSize
	return s.Cars.List(ctx, pageSize, offset)
}

func (s *CatalogService) GetCar(ctx context.Context, id string) (domain.Car, error) {
	return s.Cars.Get(ctx, id)
}

package services

import (
	"context"
	"errors"

	"storefront/entities"
	"storefront/repository"

	"go.uber.org/zap"
)

// CatalogService serves catalog data to the views. Results are never cached;
// each view load fetches again and the latest fetch wins.
type CatalogService struct {
	cr  repository.CatalogRepository
	log *zap.Logger
}

func NewCatalogService(catalogRepo repository.CatalogRepository, log *zap.Logger) (CatalogService, error) {
	if catalogRepo == nil {
		return CatalogService{}, errors.New("catalog repository must be non-nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return CatalogService{cr: catalogRepo, log: log}, nil
}

func (cs *CatalogService) GetProducts(ctx context.Context) ([]entities.Product, error) {
	products, err := cs.cr.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	cs.log.Debug("loaded products", zap.Int("count", len(products)))
	return products, nil
}

func (cs *CatalogService) GetProductById(ctx context.Context, id string) (entities.Product, error) {
	return cs.cr.GetProductById(ctx, id)
}

func (cs *CatalogService) GetBrands(ctx context.Context) ([]entities.Brand, error) {
	brands, err := cs.cr.GetBrands(ctx)
	if err != nil {
		return nil, err
	}
	cs.log.Debug("loaded brands", zap.Int("count", len(brands)))
	return brands, nil
}

func (cs *CatalogService) GetCategories(ctx context.Context) ([]entities.Category, error) {
	categories, err := cs.cr.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	cs.log.Debug("loaded categories", zap.Int("count", len(categories)))
	return categories, nil
}

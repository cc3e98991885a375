package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
)

// ProductService handles business logic for products
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns products whose name contains name, ordered by name
func (s *ProductService) ListProducts(ctx context.Context, name string) ([]models.Product, error) {
	return s.repo.List(ctx, name)
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return product, nil
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	product := &models.Product{Name: in.Name, Price: in.Price}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProduct replaces the name and price of an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, translate(err)
	}

	product := &models.Product{ID: id, Name: in.Name, Price: in.Price}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, translate(err)
	}

	s.logger.Info("product updated", "product_id", id)
	return product, nil
}

// DeleteProduct removes a product. Products referenced by orders cannot be deleted.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return translate(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}

	s.logger.Info("product deleted", "product_id", id)
	return nil
}

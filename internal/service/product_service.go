package service

import (
	"context"
	"fmt"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

// ProductService manages store listings.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, in model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Create rejects blank fields and negative prices. A zero price is a free download.
func (s *productService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if err := apperrors.Required([]string{"title", "image_url", "purchase_link"}, map[string]string{
		"title":         in.Title,
		"image_url":     in.ImageURL,
		"purchase_link": in.PurchaseLink,
	}); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, apperrors.ErrNegativePrice
	}
	product := model.NewProduct(in)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

package product

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	UpdateImageURL(ctx context.Context, id uint, imageURL string) error
	Delete(ctx context.Context, id uint) error
}

// ImageStore holds uploaded product images and serves them by URL.
type ImageStore interface {
	UploadImage(ctx context.Context, filename string, content []byte) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

type productService struct {
	productRepo ProductRepository
	imageStore  ImageStore
}

func NewProductService(productRepo ProductRepository, imageStore ImageStore) *productService {
	return &productService{
		productRepo: productRepo,
		imageStore:  imageStore,
	}
}

func (s *productService) GetAllProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (domain.Product, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return domain.Product{}, errors.New("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if product.Name == "" {
		logger.Error("Invalid product data: product name is required")
		return nil, errors.New("product name is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Weight <= 0 {
		logger.Error("Invalid product data: weight must be greater than 0")
		return nil, errors.New("weight must be greater than 0")
	}

	if product.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return nil, errors.New("stock cannot be negative")
	}

	product.SellerID = sellerID

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Info("product created successfully", "product_id", product.ID, "seller_id", sellerID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if product.Price <= 0 {
		logger.Error("Invalid product data: price must be greater than 0")
		return nil, errors.New("price must be greater than 0")
	}

	if product.Stock < 0 {
		logger.Error("Invalid product data: stock cannot be negative")
		return nil, errors.New("stock cannot be negative")
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("product not found", err)
		return nil, err
	}

	if existing.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}

	product.SellerID = existing.SellerID

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", updated.ID)

	return &updated, nil
}

// UploadProductImage stores a new image for the product and swaps the image
// URL. The previous image is removed from the store best-effort; a stale
// orphan in the store is preferable to a product pointing at a dead URL.
func (s *productService) UploadProductImage(ctx context.Context, sellerID, id uint, filename string, content []byte) (*domain.Product, error) {
	if id == 0 {
		logger.Error("Invalid product id when uploading image")
		return nil, errors.New("invalid product id")
	}

	if len(content) == 0 {
		return nil, errors.New("image content is empty")
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found", err)
		return nil, err
	}

	if existing.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}

	imageURL, err := s.imageStore.UploadImage(ctx, filename, content)
	if err != nil {
		logger.Error("failed to upload product image", err)
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	if err := s.productRepo.UpdateImageURL(ctx, id, imageURL); err != nil {
		logger.Error("failed to save product image url", err)
		return nil, fmt.Errorf("failed to save product image url: %w", err)
	}

	if existing.ImageURL != "" {
		if err := s.imageStore.DeleteImage(ctx, existing.ImageURL); err != nil {
			logger.Warn("Failed to delete previous product image", "product_id", id, "error", err)
		}
	}

	existing.ImageURL = imageURL

	logger.Info("product image updated", "product_id", id, "seller_id", sellerID)

	return &existing, nil
}

func (s *productService) DeleteProduct(ctx context.Context, sellerID, id uint) error {
	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return errors.New("invalid product id")
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found", err)
		return err
	}

	if existing.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}

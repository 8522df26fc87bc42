package cart

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID uint) (domain.Cart, error)
	GetByUser(ctx context.Context, userID uint) (domain.Cart, error)
	FindItem(ctx context.Context, cartID, productID uint) (domain.CartItem, error)
	FindItemByID(ctx context.Context, itemID uint) (domain.CartItem, error)
	CreateItem(ctx context.Context, item *domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
}

// ProductRepository is the read-only slice of the product store the cart needs.
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddToCart adds quantity of a product to the user's cart, merging with an
// existing line for the same product. Quantity here is a request, not a
// reservation: stock is only decremented at checkout commit.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Error("Failed to find product for cart", err)
		return domain.CartItem{}, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get or create cart", err)
		return domain.CartItem{}, err
	}

	existing, err := s.cartRepo.FindItem(ctx, cart.ID, productID)
	if err != nil && !errors.Is(err, domain.ErrCartItemNotFound) {
		logger.Error("Failed to find cart item", err)
		return domain.CartItem{}, err
	}

	newQuantity := quantity
	if existing.ID != 0 {
		newQuantity += existing.Quantity
	}

	if newQuantity > product.Stock {
		return domain.CartItem{}, domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   newQuantity,
			Available:   product.Stock,
		}
	}

	if existing.ID != 0 {
		if err := s.cartRepo.UpdateItemQuantity(ctx, existing.ID, newQuantity); err != nil {
			logger.Error("Failed to update cart item quantity", err)
			return domain.CartItem{}, err
		}

		existing.Quantity = newQuantity
		existing.Product = product

		return existing, nil
	}

	item := domain.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		Product:   product,
	}

	if err := s.cartRepo.CreateItem(ctx, &item); err != nil {
		logger.Error("Failed to create cart item", err)
		return domain.CartItem{}, err
	}

	return item, nil
}

// GetCart returns the user's cart with per-item products and derived totals.
// A user with no cart yet gets an empty summary, not an error.
func (s *cartService) GetCart(ctx context.Context, userID uint) (domain.CartSummary, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.CartSummary{Cart: domain.Cart{UserID: userID, Items: []domain.CartItem{}}}, nil
		}
		logger.Error("Failed to get cart", err)
		return domain.CartSummary{}, err
	}

	summary := domain.CartSummary{Cart: cart}
	for _, item := range cart.Items {
		summary.TotalItems += item.Quantity
		summary.TotalPrice += item.Subtotal()
	}

	return summary, nil
}

// UpdateItem sets the quantity of one cart line, re-checking stock.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return domain.CartItem{}, err
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return domain.CartItem{}, err
	}

	if item.CartID != cart.ID {
		return domain.CartItem{}, domain.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return domain.CartItem{}, err
	}

	if quantity > product.Stock {
		return domain.CartItem{}, domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		logger.Error("Failed to update cart item", err)
		return domain.CartItem{}, err
	}

	item.Quantity = quantity
	item.Product = product

	return item, nil
}

// RemoveItem deletes one line from the user's cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return err
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	if item.CartID != cart.ID {
		return domain.ErrForbidden
	}

	if err := s.cartRepo.DeleteItem(ctx, itemID); err != nil {
		logger.Error("Failed to delete cart item", err)
		return err
	}

	return nil
}

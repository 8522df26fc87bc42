package checkout

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutRepository contract interface. CommitCheckout is the transaction
// boundary: checkout insert, order inserts, stock decrements and cart
// clearing must land together or not at all.
type CheckoutRepository interface {
	GetAddressByID(ctx context.Context, id uint) (domain.Address, error)
	GetCartByUser(ctx context.Context, userID uint) (domain.Cart, error)
	CommitCheckout(ctx context.Context, checkout *domain.Checkout, cartID uint) error
	GetCheckoutComplete(ctx context.Context, id string) (domain.Checkout, error)
}

type CreateCheckoutInput struct {
	AddressID      uint   `validate:"required"`
	ShippingMethod string `validate:"omitempty,max=50"`
	Notes          string `validate:"omitempty,max=500"`
}

type checkoutService struct {
	checkoutRepo CheckoutRepository
	validate     *validator.Validate
}

func NewCheckoutService(checkoutRepo CheckoutRepository, validate *validator.Validate) *checkoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		validate:     validate,
	}
}

// CreateCheckout converts the user's cart into a checkout with one order per
// cart item. The per-item stock comparison here is an optimistic pre-check;
// the repository re-verifies every decrement inside the commit transaction,
// so a race lost to a concurrent checkout surfaces as InsufficientStockError
// with nothing persisted.
func (s *checkoutService) CreateCheckout(ctx context.Context, userID uint, input CreateCheckoutInput) (domain.Checkout, error) {
	if err := s.validate.Struct(&input); err != nil {
		logger.Error("Invalid checkout input", err)
		return domain.Checkout{}, fmt.Errorf("%w: address id is required", domain.ErrValidation)
	}

	address, err := s.checkoutRepo.GetAddressByID(ctx, input.AddressID)
	if err != nil {
		logger.Error("Failed to load checkout address", err)
		return domain.Checkout{}, err
	}

	if address.UserID != userID {
		logger.Warn("Checkout address belongs to another user", "address_id", address.ID, "user_id", userID)
		return domain.Checkout{}, domain.ErrForbidden
	}

	cart, err := s.checkoutRepo.GetCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.Checkout{}, domain.ErrEmptyCart
		}
		logger.Error("Failed to load cart for checkout", err)
		return domain.Checkout{}, err
	}

	if len(cart.Items) == 0 {
		return domain.Checkout{}, domain.ErrEmptyCart
	}

	// Optimistic validation pass before any write.
	for _, item := range cart.Items {
		if item.Product.ID == 0 {
			return domain.Checkout{}, domain.ErrProductNotFound
		}

		if item.Quantity > item.Product.Stock {
			return domain.Checkout{}, domain.InsufficientStockError{
				ProductID:   item.Product.ID,
				ProductName: item.Product.Name,
				Requested:   item.Quantity,
				Available:   item.Product.Stock,
			}
		}
	}

	shippingMethod := input.ShippingMethod
	if shippingMethod == "" {
		shippingMethod = domain.ShippingMethodRegular
	}

	now := time.Now()
	checkout := domain.Checkout{
		ID:             uuid.NewString(),
		UserID:         userID,
		AddressID:      address.ID,
		Address:        address,
		ShippingMethod: shippingMethod,
		Notes:          input.Notes,
		Status:         domain.CheckoutStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var totalPrice int64
	var totalWeight int
	for _, item := range cart.Items {
		priceEach := item.Product.Price
		lineTotal := priceEach * int64(item.Quantity)
		totalPrice += lineTotal
		totalWeight += item.Product.Weight * item.Quantity

		checkout.Orders = append(checkout.Orders, domain.Order{
			ID:         uuid.NewString(),
			CheckoutID: checkout.ID,
			UserID:     userID,
			ProductID:  item.Product.ID,
			Product:    item.Product,
			Quantity:   item.Quantity,
			PriceEach:  priceEach,
			TotalPrice: lineTotal,
			Status:     domain.OrderStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	checkout.TotalPrice = totalPrice
	checkout.ShippingPrice = CalculateShippingPrice(totalWeight)
	checkout.GrandTotal = totalPrice + checkout.ShippingPrice

	if err := s.checkoutRepo.CommitCheckout(ctx, &checkout, cart.ID); err != nil {
		logger.Error("Failed to commit checkout", err)
		return domain.Checkout{}, err
	}

	logger.Info("Checkout committed",
		"checkout_id", checkout.ID,
		"user_id", userID,
		"orders", len(checkout.Orders),
		"grand_total", checkout.GrandTotal,
	)

	return checkout, nil
}

// GetCheckoutByID resolves a checkout together with its orders and the
// product display fields. Read-only projection.
func (s *checkoutService) GetCheckoutByID(ctx context.Context, id string, userID uint) (domain.Checkout, error) {
	checkout, err := s.checkoutRepo.GetCheckoutComplete(ctx, id)
	if err != nil {
		logger.Error("Failed to get checkout", err)
		return domain.Checkout{}, err
	}

	if checkout.UserID != userID {
		return domain.Checkout{}, domain.ErrForbidden
	}

	return checkout, nil
}

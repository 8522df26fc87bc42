package postgres

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"

	"gorm.io/gorm"
)

type CheckoutRepository struct {
	DB *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) *CheckoutRepository {
	return &CheckoutRepository{
		DB: db,
	}
}

func (r *CheckoutRepository) GetAddressByID(ctx context.Context, id uint) (domain.Address, error) {
	var address domain.Address

	err := r.DB.WithContext(ctx).First(&address, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Address{}, domain.ErrAddressNotFound
		}
		return domain.Address{}, fmt.Errorf("failed to find address: %w", err)
	}

	return address, nil
}

func (r *CheckoutRepository) GetCartByUser(ctx context.Context, userID uint) (domain.Cart, error) {
	var cart domain.Cart

	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC")
		}).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("failed to find cart: %w", err)
	}

	return cart, nil
}

// CommitCheckout persists a checkout and everything it implies as one
// transaction: the checkout row, one order row per line, a guarded stock
// decrement per line, and the cart wipe. The decrement condition
// (stock >= quantity) is the authoritative oversell guard; when it fails
// the whole transaction rolls back and the caller gets
// InsufficientStockError, leaving stock and cart untouched.
func (r *CheckoutRepository) CommitCheckout(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Orders", "Address").Create(checkout).Error; err != nil {
			return fmt.Errorf("failed to create checkout: %w", err)
		}

		for i := range checkout.Orders {
			order := &checkout.Orders[i]

			if err := tx.Omit("Product").Create(order).Error; err != nil {
				return fmt.Errorf("failed to create order: %w", err)
			}

			result := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", order.ProductID, order.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", order.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.InsufficientStockError{
					ProductID:   order.ProductID,
					ProductName: order.Product.Name,
					Requested:   order.Quantity,
				}
			}
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
}

func (r *CheckoutRepository) GetCheckoutComplete(ctx context.Context, id string) (domain.Checkout, error) {
	var checkout domain.Checkout

	err := r.DB.WithContext(ctx).
		Preload("Address").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.created_at ASC")
		}).
		Preload("Orders.Product", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "weight", "image_url")
		}).
		Where("id = ?", id).
		First(&checkout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Checkout{}, domain.ErrCheckoutNotFound
		}
		return domain.Checkout{}, fmt.Errorf("failed to find checkout: %w", err)
	}

	return checkout, nil
}

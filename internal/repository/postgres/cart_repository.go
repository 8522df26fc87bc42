package postgres

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{
		DB: db,
	}
}

func (r *CartRepository) GetOrCreateByUser(ctx context.Context, userID uint) (domain.Cart, error) {
	var cart domain.Cart

	err := r.DB.WithContext(ctx).
		Where(domain.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

func (r *CartRepository) GetByUser(ctx context.Context, userID uint) (domain.Cart, error) {
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

func (r *CartRepository) FindItem(ctx context.Context, cartID, productID uint) (domain.CartItem, error) {
	var item domain.CartItem

	err := r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

func (r *CartRepository) FindItemByID(ctx context.Context, itemID uint) (domain.CartItem, error) {
	var item domain.CartItem

	err := r.DB.WithContext(ctx).First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("failed to find cart item: %w", err)
	}

	return item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item *domain.CartItem) error {
	if err := r.DB.WithContext(ctx).Omit("Product").Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	return nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := r.DB.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.CartItem{}, itemID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

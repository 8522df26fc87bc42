package postgres

import (
	"context"
	"errors"
	"fmt"
	"sedulurTani/domain"

	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{
		DB: db,
	}
}

func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	if err := r.DB.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uint) (domain.Address, error) {
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

func (r *AddressRepository) FindAllByUser(ctx context.Context, userID uint) ([]domain.Address, error) {
	var addresses []domain.Address

	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find addresses: %w", err)
	}

	return addresses, nil
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) error {
	result := r.DB.WithContext(ctx).Model(&domain.Address{}).Where("id = ?", address.ID).
		Select("label", "recipient_name", "phone", "address_line", "city", "province", "postal_code", "is_default").
		Updates(address)
	if result.Error != nil {
		return fmt.Errorf("failed to update address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAddressNotFound
	}

	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Address{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAddressNotFound
	}

	return nil
}

// UnsetDefaults clears the default flag on all of the user's addresses,
// optionally sparing one (exceptID 0 spares none).
func (r *AddressRepository) UnsetDefaults(ctx context.Context, userID uint, exceptID uint) error {
	query := r.DB.WithContext(ctx).Model(&domain.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}

	if err := query.Update("is_default", false).Error; err != nil {
		return fmt.Errorf("failed to unset default addresses: %w", err)
	}

	return nil
}

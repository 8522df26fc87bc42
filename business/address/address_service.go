package address

import (
	"context"
	"fmt"
	"sedulurTani/domain"
	"sedulurTani/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// AddressRepository contract interface
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	FindByID(ctx context.Context, id uint) (domain.Address, error)
	FindAllByUser(ctx context.Context, userID uint) ([]domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id uint) error
	UnsetDefaults(ctx context.Context, userID uint, exceptID uint) error
}

type CreateAddressInput struct {
	Label         string `validate:"required"`
	RecipientName string `validate:"required"`
	Phone         string `validate:"required"`
	AddressLine   string `validate:"required"`
	City          string `validate:"required"`
	Province      string `validate:"required"`
	PostalCode    string `validate:"required"`
	IsDefault     bool
}

type UpdateAddressInput struct {
	Label         *string
	RecipientName *string
	Phone         *string
	AddressLine   *string
	City          *string
	Province      *string
	PostalCode    *string
	IsDefault     *bool
}

type addressService struct {
	addressRepo AddressRepository
	validate    *validator.Validate
}

func NewAddressService(addressRepo AddressRepository, validate *validator.Validate) *addressService {
	return &addressService{
		addressRepo: addressRepo,
		validate:    validate,
	}
}

func (s *addressService) CreateAddress(ctx context.Context, userID uint, input CreateAddressInput) (domain.Address, error) {
	if err := s.validate.Struct(&input); err != nil {
		logger.Error("Invalid address input", err)
		return domain.Address{}, fmt.Errorf("%w: all address fields are required", domain.ErrValidation)
	}

	if input.IsDefault {
		if err := s.addressRepo.UnsetDefaults(ctx, userID, 0); err != nil {
			logger.Error("Failed to unset default addresses", err)
			return domain.Address{}, err
		}
	}

	address := domain.Address{
		UserID:        userID,
		Label:         input.Label,
		RecipientName: input.RecipientName,
		Phone:         input.Phone,
		AddressLine:   input.AddressLine,
		City:          input.City,
		Province:      input.Province,
		PostalCode:    input.PostalCode,
		IsDefault:     input.IsDefault,
	}

	if err := s.addressRepo.Create(ctx, &address); err != nil {
		logger.Error("Failed to create address", err)
		return domain.Address{}, err
	}

	return address, nil
}

func (s *addressService) GetAllAddresses(ctx context.Context, userID uint) ([]domain.Address, error) {
	return s.addressRepo.FindAllByUser(ctx, userID)
}

func (s *addressService) GetAddressByID(ctx context.Context, id, userID uint) (domain.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}

	if address.UserID != userID {
		return domain.Address{}, domain.ErrForbidden
	}

	return address, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, id, userID uint, input UpdateAddressInput) (domain.Address, error) {
	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Address{}, err
	}

	if existing.UserID != userID {
		return domain.Address{}, domain.ErrForbidden
	}

	if input.Label == nil && input.RecipientName == nil && input.Phone == nil &&
		input.AddressLine == nil && input.City == nil && input.Province == nil &&
		input.PostalCode == nil && input.IsDefault == nil {
		return domain.Address{}, fmt.Errorf("%w: at least one field must be provided for update", domain.ErrValidation)
	}

	if input.IsDefault != nil && *input.IsDefault && !existing.IsDefault {
		if err := s.addressRepo.UnsetDefaults(ctx, userID, id); err != nil {
			logger.Error("Failed to unset default addresses", err)
			return domain.Address{}, err
		}
	}

	if input.Label != nil {
		existing.Label = *input.Label
	}
	if input.RecipientName != nil {
		existing.RecipientName = *input.RecipientName
	}
	if input.Phone != nil {
		existing.Phone = *input.Phone
	}
	if input.AddressLine != nil {
		existing.AddressLine = *input.AddressLine
	}
	if input.City != nil {
		existing.City = *input.City
	}
	if input.Province != nil {
		existing.Province = *input.Province
	}
	if input.IsDefault != nil {
		existing.IsDefault = *input.IsDefault
	}
	if input.PostalCode != nil {
		existing.PostalCode = *input.PostalCode
	}

	if err := s.addressRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update address", err)
		return domain.Address{}, err
	}

	return existing, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, id, userID uint) error {
	existing, err := s.addressRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.addressRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete address", err)
		return err
	}

	return nil
}

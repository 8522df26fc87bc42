package address

import (
	"context"
	"testing"

	"sedulurTani/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAddressRepo struct {
	createFunc        func(ctx context.Context, address *domain.Address) error
	findByIDFunc      func(ctx context.Context, id uint) (domain.Address, error)
	findAllByUserFunc func(ctx context.Context, userID uint) ([]domain.Address, error)
	updateFunc        func(ctx context.Context, address *domain.Address) error
	deleteFunc        func(ctx context.Context, id uint) error
	unsetDefaultsFunc func(ctx context.Context, userID uint, exceptID uint) error
}

func (m *mockAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	return m.createFunc(ctx, address)
}

func (m *mockAddressRepo) FindByID(ctx context.Context, id uint) (domain.Address, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockAddressRepo) FindAllByUser(ctx context.Context, userID uint) ([]domain.Address, error) {
	return m.findAllByUserFunc(ctx, userID)
}

func (m *mockAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	return m.updateFunc(ctx, address)
}

func (m *mockAddressRepo) Delete(ctx context.Context, id uint) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockAddressRepo) UnsetDefaults(ctx context.Context, userID uint, exceptID uint) error {
	return m.unsetDefaultsFunc(ctx, userID, exceptID)
}

func validInput() CreateAddressInput {
	return CreateAddressInput{
		Label:         "Rumah",
		RecipientName: "Budi Santoso",
		Phone:         "081234567890",
		AddressLine:   "Jl. Tani Makmur No. 12",
		City:          "Sleman",
		Province:      "DI Yogyakarta",
		PostalCode:    "55581",
	}
}

func TestCreateAddress(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &mockAddressRepo{
			createFunc: func(ctx context.Context, address *domain.Address) error {
				address.ID = 7
				return nil
			},
		}

		svc := NewAddressService(repo, validator.New())

		address, err := svc.CreateAddress(context.Background(), 1, validInput())
		require.NoError(t, err)
		assert.Equal(t, uint(7), address.ID)
		assert.Equal(t, uint(1), address.UserID)
		assert.Equal(t, "Sleman", address.City)
	})

	t.Run("missing_field", func(t *testing.T) {
		repo := &mockAddressRepo{
			createFunc: func(ctx context.Context, address *domain.Address) error {
				t.Fatal("create must not run for invalid input")
				return nil
			},
		}

		svc := NewAddressService(repo, validator.New())

		input := validInput()
		input.City = ""

		_, err := svc.CreateAddress(context.Background(), 1, input)
		assert.Error(t, err)
	})

	t.Run("default_address_unsets_previous_defaults", func(t *testing.T) {
		unsetCalled := false
		repo := &mockAddressRepo{
			createFunc: func(ctx context.Context, address *domain.Address) error {
				return nil
			},
			unsetDefaultsFunc: func(ctx context.Context, userID uint, exceptID uint) error {
				unsetCalled = true
				assert.Equal(t, uint(1), userID)
				return nil
			},
		}

		svc := NewAddressService(repo, validator.New())

		input := validInput()
		input.IsDefault = true

		_, err := svc.CreateAddress(context.Background(), 1, input)
		require.NoError(t, err)
		assert.True(t, unsetCalled)
	})
}

func TestGetAddressByID(t *testing.T) {
	repo := &mockAddressRepo{
		findByIDFunc: func(ctx context.Context, id uint) (domain.Address, error) {
			if id != 7 {
				return domain.Address{}, domain.ErrAddressNotFound
			}
			return domain.Address{ID: 7, UserID: 1, Label: "Rumah"}, nil
		},
	}

	svc := NewAddressService(repo, validator.New())

	t.Run("found", func(t *testing.T) {
		address, err := svc.GetAddressByID(context.Background(), 7, 1)
		require.NoError(t, err)
		assert.Equal(t, "Rumah", address.Label)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetAddressByID(context.Background(), 99, 1)
		assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	})

	t.Run("other_users_address", func(t *testing.T) {
		_, err := svc.GetAddressByID(context.Background(), 7, 2)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUpdateAddress(t *testing.T) {
	newRepo := func() *mockAddressRepo {
		return &mockAddressRepo{
			findByIDFunc: func(ctx context.Context, id uint) (domain.Address, error) {
				return domain.Address{ID: 7, UserID: 1, Label: "Rumah", City: "Sleman"}, nil
			},
			updateFunc: func(ctx context.Context, address *domain.Address) error {
				return nil
			},
			unsetDefaultsFunc: func(ctx context.Context, userID uint, exceptID uint) error {
				return nil
			},
		}
	}

	t.Run("partial_update_keeps_other_fields", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())

		label := "Kantor"
		address, err := svc.UpdateAddress(context.Background(), 7, 1, UpdateAddressInput{Label: &label})
		require.NoError(t, err)

		assert.Equal(t, "Kantor", address.Label)
		assert.Equal(t, "Sleman", address.City)
	})

	t.Run("empty_update_rejected", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())

		_, err := svc.UpdateAddress(context.Background(), 7, 1, UpdateAddressInput{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("other_users_address", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())

		label := "Kantor"
		_, err := svc.UpdateAddress(context.Background(), 7, 2, UpdateAddressInput{Label: &label})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("promoting_to_default_unsets_others", func(t *testing.T) {
		repo := newRepo()
		unsetExcept := uint(0)
		repo.unsetDefaultsFunc = func(ctx context.Context, userID uint, exceptID uint) error {
			unsetExcept = exceptID
			return nil
		}

		svc := NewAddressService(repo, validator.New())

		isDefault := true
		address, err := svc.UpdateAddress(context.Background(), 7, 1, UpdateAddressInput{IsDefault: &isDefault})
		require.NoError(t, err)

		assert.True(t, address.IsDefault)
		assert.Equal(t, uint(7), unsetExcept, "the promoted address itself keeps its flag")
	})
}

func TestDeleteAddress(t *testing.T) {
	newRepo := func() *mockAddressRepo {
		return &mockAddressRepo{
			findByIDFunc: func(ctx context.Context, id uint) (domain.Address, error) {
				if id != 7 {
					return domain.Address{}, domain.ErrAddressNotFound
				}
				return domain.Address{ID: 7, UserID: 1}, nil
			},
			deleteFunc: func(ctx context.Context, id uint) error {
				return nil
			},
		}
	}

	t.Run("success", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())
		assert.NoError(t, svc.DeleteAddress(context.Background(), 7, 1))
	})

	t.Run("not_found", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())
		assert.ErrorIs(t, svc.DeleteAddress(context.Background(), 99, 1), domain.ErrAddressNotFound)
	})

	t.Run("other_users_address", func(t *testing.T) {
		svc := NewAddressService(newRepo(), validator.New())
		assert.ErrorIs(t, svc.DeleteAddress(context.Background(), 7, 2), domain.ErrForbidden)
	})
}

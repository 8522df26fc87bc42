package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"sedulurTani/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCheckoutRepo struct {
	getAddressFunc  func(ctx context.Context, id uint) (domain.Address, error)
	getCartFunc     func(ctx context.Context, userID uint) (domain.Cart, error)
	commitFunc      func(ctx context.Context, checkout *domain.Checkout, cartID uint) error
	getCompleteFunc func(ctx context.Context, id string) (domain.Checkout, error)
}

func (m *mockCheckoutRepo) GetAddressByID(ctx context.Context, id uint) (domain.Address, error) {
	return m.getAddressFunc(ctx, id)
}

func (m *mockCheckoutRepo) GetCartByUser(ctx context.Context, userID uint) (domain.Cart, error) {
	return m.getCartFunc(ctx, userID)
}

func (m *mockCheckoutRepo) CommitCheckout(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
	return m.commitFunc(ctx, checkout, cartID)
}

func (m *mockCheckoutRepo) GetCheckoutComplete(ctx context.Context, id string) (domain.Checkout, error) {
	return m.getCompleteFunc(ctx, id)
}

func validAddress(userID uint) domain.Address {
	return domain.Address{
		ID:            7,
		UserID:        userID,
		Label:         "Rumah",
		RecipientName: "Budi Santoso",
		Phone:         "081234567890",
		AddressLine:   "Jl. Tani Makmur No. 12",
		City:          "Sleman",
		Province:      "DI Yogyakarta",
		PostalCode:    "55581",
	}
}

func cartWith(items ...domain.CartItem) domain.Cart {
	return domain.Cart{ID: 3, UserID: 1, Items: items}
}

func TestCreateCheckout_Success(t *testing.T) {
	// cart = [{product A, price 45000, weight 10000g, qty 2}], stock(A)=100
	productA := domain.Product{ID: 11, Name: "Pupuk Kompos Organik 10kg", Price: 45000, Weight: 10000, Stock: 100}

	var committed *domain.Checkout
	var clearedCartID uint

	repo := &mockCheckoutRepo{
		getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
			return validAddress(1), nil
		},
		getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
			return cartWith(domain.CartItem{ID: 21, CartID: 3, ProductID: 11, Quantity: 2, Product: productA}), nil
		},
		commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
			committed = checkout
			clearedCartID = cartID
			return nil
		},
	}

	svc := NewCheckoutService(repo, validator.New())

	result, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(90000), result.TotalPrice)
	assert.Equal(t, int64(110000), result.ShippingPrice) // 10000 + ceil(20000g/1kg)*5000
	assert.Equal(t, int64(200000), result.GrandTotal)
	assert.Equal(t, domain.CheckoutStatusPending, result.Status)
	assert.Equal(t, domain.ShippingMethodRegular, result.ShippingMethod)
	assert.NotEmpty(t, result.ID)

	require.Len(t, result.Orders, 1)
	order := result.Orders[0]
	assert.Equal(t, result.ID, order.CheckoutID)
	assert.Equal(t, uint(11), order.ProductID)
	assert.Equal(t, 2, order.Quantity)
	assert.Equal(t, int64(45000), order.PriceEach)
	assert.Equal(t, int64(90000), order.TotalPrice)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	require.NotNil(t, committed)
	assert.Equal(t, uint(3), clearedCartID)
}

func TestCreateCheckout_OrderTotalsSumToCheckoutTotal(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Pupuk Urea 50kg", Price: 180000, Weight: 50000, Stock: 50},
		{ID: 2, Name: "Pupuk NPK Cair Premium 500ml", Price: 45000, Weight: 550, Stock: 180},
		{ID: 3, Name: "Pupuk Boron 500g", Price: 45000, Weight: 500, Stock: 130},
	}

	repo := &mockCheckoutRepo{
		getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
			return validAddress(1), nil
		},
		getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
			return cartWith(
				domain.CartItem{ID: 1, CartID: 3, ProductID: 1, Quantity: 1, Product: products[0]},
				domain.CartItem{ID: 2, CartID: 3, ProductID: 2, Quantity: 3, Product: products[1]},
				domain.CartItem{ID: 3, CartID: 3, ProductID: 3, Quantity: 2, Product: products[2]},
			), nil
		},
		commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
			return nil
		},
	}

	svc := NewCheckoutService(repo, validator.New())

	result, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
	require.NoError(t, err)

	var orderSum int64
	for _, o := range result.Orders {
		assert.Equal(t, o.PriceEach*int64(o.Quantity), o.TotalPrice)
		orderSum += o.TotalPrice
	}

	assert.Equal(t, orderSum, result.TotalPrice)
	assert.Equal(t, result.TotalPrice+result.ShippingPrice, result.GrandTotal)

	// cart order preserved in the orders list
	require.Len(t, result.Orders, 3)
	assert.Equal(t, uint(1), result.Orders[0].ProductID)
	assert.Equal(t, uint(2), result.Orders[1].ProductID)
	assert.Equal(t, uint(3), result.Orders[2].ProductID)
}

func TestCreateCheckout_EmptyCart(t *testing.T) {
	tests := []struct {
		name        string
		getCartFunc func(ctx context.Context, userID uint) (domain.Cart, error)
	}{
		{
			name: "cart_without_items",
			getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
				return cartWith(), nil
			},
		},
		{
			name: "no_cart_at_all",
			getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
				return domain.Cart{}, domain.ErrCartNotFound
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commitCalled := false
			repo := &mockCheckoutRepo{
				getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
					return validAddress(1), nil
				},
				getCartFunc: tt.getCartFunc,
				commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
					commitCalled = true
					return nil
				},
			}

			svc := NewCheckoutService(repo, validator.New())

			_, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
			assert.ErrorIs(t, err, domain.ErrEmptyCart)
			assert.False(t, commitCalled, "no writes may happen for an empty cart")
		})
	}
}

func TestCreateCheckout_AddressErrors(t *testing.T) {
	tests := []struct {
		name           string
		getAddressFunc func(ctx context.Context, id uint) (domain.Address, error)
		wantErr        error
	}{
		{
			name: "address_not_found",
			getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
				return domain.Address{}, domain.ErrAddressNotFound
			},
			wantErr: domain.ErrAddressNotFound,
		},
		{
			name: "address_owned_by_another_user",
			getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
				return validAddress(99), nil
			},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commitCalled := false
			repo := &mockCheckoutRepo{
				getAddressFunc: tt.getAddressFunc,
				getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
					t.Fatal("cart must not be loaded when the address gate fails")
					return domain.Cart{}, nil
				},
				commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
					commitCalled = true
					return nil
				},
			}

			svc := NewCheckoutService(repo, validator.New())

			_, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, commitCalled)
		})
	}
}

func TestCreateCheckout_MissingAddressID(t *testing.T) {
	repo := &mockCheckoutRepo{
		getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
			t.Fatal("address must not be loaded for invalid input")
			return domain.Address{}, nil
		},
	}

	svc := NewCheckoutService(repo, validator.New())

	_, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateCheckout_StockBoundary(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    int
		wantOK   bool
	}{
		{name: "quantity_equal_to_stock_succeeds", quantity: 5, stock: 5, wantOK: true},
		{name: "quantity_one_over_stock_fails", quantity: 6, stock: 5, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productA := domain.Product{ID: 11, Name: "Pupuk Kandang Ayam 5kg", Price: 25000, Weight: 5000, Stock: tt.stock}

			commitCalled := false
			repo := &mockCheckoutRepo{
				getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
					return validAddress(1), nil
				},
				getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
					return cartWith(domain.CartItem{ID: 21, CartID: 3, ProductID: 11, Quantity: tt.quantity, Product: productA}), nil
				},
				commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
					commitCalled = true
					return nil
				},
			}

			svc := NewCheckoutService(repo, validator.New())

			_, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
			if tt.wantOK {
				assert.NoError(t, err)
				assert.True(t, commitCalled)
				return
			}

			require.Error(t, err)
			assert.True(t, domain.IsInsufficientStock(err))
			assert.False(t, commitCalled, "failed pre-check must not reach the commit")

			var ise domain.InsufficientStockError
			require.True(t, errors.As(err, &ise))
			assert.Equal(t, uint(11), ise.ProductID)
			assert.Equal(t, "Pupuk Kandang Ayam 5kg", ise.ProductName)
		})
	}
}

func TestCreateCheckout_CommitRaceSurfacesInsufficientStock(t *testing.T) {
	// Pre-check passes, then the repository loses the compare-and-decrement
	// race inside the transaction. The error must reach the caller intact.
	productA := domain.Product{ID: 11, Name: "Pupuk Urea 50kg", Price: 180000, Weight: 50000, Stock: 1}

	repo := &mockCheckoutRepo{
		getAddressFunc: func(ctx context.Context, id uint) (domain.Address, error) {
			return validAddress(1), nil
		},
		getCartFunc: func(ctx context.Context, userID uint) (domain.Cart, error) {
			return cartWith(domain.CartItem{ID: 21, CartID: 3, ProductID: 11, Quantity: 1, Product: productA}), nil
		},
		commitFunc: func(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
			return domain.InsufficientStockError{ProductID: 11, ProductName: productA.Name, Requested: 1}
		},
	}

	svc := NewCheckoutService(repo, validator.New())

	_, err := svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
	assert.True(t, domain.IsInsufficientStock(err))
}

// concurrentCommitRepo emulates the storage engine's all-or-nothing commit
// with a mutex-guarded compare-and-decrement.
type concurrentCommitRepo struct {
	mu      sync.Mutex
	stock   map[uint]int
	cart    domain.Cart
	address domain.Address
	commits int
}

func (r *concurrentCommitRepo) GetAddressByID(ctx context.Context, id uint) (domain.Address, error) {
	return r.address, nil
}

func (r *concurrentCommitRepo) GetCartByUser(ctx context.Context, userID uint) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := r.cart
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	for i := range items {
		items[i].Product.Stock = r.stock[items[i].ProductID]
	}
	cart.Items = items

	return cart, nil
}

func (r *concurrentCommitRepo) CommitCheckout(ctx context.Context, checkout *domain.Checkout, cartID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range checkout.Orders {
		if r.stock[o.ProductID] < o.Quantity {
			return domain.InsufficientStockError{
				ProductID:   o.ProductID,
				ProductName: o.Product.Name,
				Requested:   o.Quantity,
				Available:   r.stock[o.ProductID],
			}
		}
	}

	for _, o := range checkout.Orders {
		r.stock[o.ProductID] -= o.Quantity
	}
	r.commits++

	return nil
}

func (r *concurrentCommitRepo) GetCheckoutComplete(ctx context.Context, id string) (domain.Checkout, error) {
	return domain.Checkout{}, domain.ErrCheckoutNotFound
}

func TestCreateCheckout_ConcurrentCheckoutsOnSameProduct(t *testing.T) {
	// two simultaneous checkouts each want all remaining stock:
	// exactly one may win, and stock must never go negative
	const remainingStock = 4

	productA := domain.Product{ID: 11, Name: "Pupuk Khusus Cabai 10kg", Price: 120000, Weight: 10000}

	repo := &concurrentCommitRepo{
		stock:   map[uint]int{11: remainingStock},
		address: validAddress(1),
		cart:    cartWith(domain.CartItem{ID: 21, CartID: 3, ProductID: 11, Quantity: remainingStock, Product: productA}),
	}

	svc := NewCheckoutService(repo, validator.New())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateCheckout(context.Background(), 1, CreateCheckoutInput{AddressID: 7})
		}(i)
	}
	wg.Wait()

	successes := 0
	stockFailures := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case domain.IsInsufficientStock(err):
			stockFailures++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one checkout may win the stock")
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 1, repo.commits)
	assert.Equal(t, 0, repo.stock[11])
	assert.GreaterOrEqual(t, repo.stock[11], 0, "stock must never go negative")
}

func TestGetCheckoutByID(t *testing.T) {
	stored := domain.Checkout{
		ID:     "8f14e45f-ea9d-4d2e-b6a1-0f52c03a1b1d",
		UserID: 1,
		Status: domain.CheckoutStatusPending,
	}

	repo := &mockCheckoutRepo{
		getCompleteFunc: func(ctx context.Context, id string) (domain.Checkout, error) {
			if id != stored.ID {
				return domain.Checkout{}, domain.ErrCheckoutNotFound
			}
			return stored, nil
		},
	}

	svc := NewCheckoutService(repo, validator.New())

	t.Run("found", func(t *testing.T) {
		result, err := svc.GetCheckoutByID(context.Background(), stored.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, result.ID)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetCheckoutByID(context.Background(), "missing-id", 1)
		assert.ErrorIs(t, err, domain.ErrCheckoutNotFound)
	})

	t.Run("other_users_checkout_is_forbidden", func(t *testing.T) {
		_, err := svc.GetCheckoutByID(context.Background(), stored.ID, 2)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

package domain

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"column:user_id;unique;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"column:cart_id;not null;index" json:"cart_id"`
	ProductID uint      `gorm:"column:product_id;not null" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal is the live price of the item, not a frozen one. Prices are only
// frozen when the cart converts into a checkout.
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// CartSummary is the cart plus the derived totals returned to clients.
type CartSummary struct {
	Cart
	TotalItems int   `json:"total_items"`
	TotalPrice int64 `json:"total_price"`
}

package domain

import "time"

const (
	CheckoutStatusPending   = "PENDING"
	CheckoutStatusCompleted = "COMPLETED"
	CheckoutStatusCancelled = "CANCELLED"

	OrderStatusPending = "PENDING"

	ShippingMethodRegular = "regular"
)

// Checkout is the committed, priced aggregate produced from a cart. It is
// written exactly once; status progression belongs to a fulfillment flow
// that lives outside this service.
type Checkout struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	AddressID      uint      `gorm:"column:address_id;not null" json:"address_id"`
	Address        Address   `gorm:"foreignKey:AddressID" json:"address"`
	Orders         []Order   `gorm:"foreignKey:CheckoutID" json:"orders"`
	TotalPrice     int64     `gorm:"column:total_price;not null" json:"total_price"`
	ShippingPrice  int64     `gorm:"column:shipping_price;not null" json:"shipping_price"`
	GrandTotal     int64     `gorm:"column:grand_total;not null" json:"grand_total"`
	ShippingMethod string    `gorm:"column:shipping_method;not null" json:"shipping_method"`
	Notes          string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	Status         string    `gorm:"column:status;not null" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Checkout) TableName() string {
	return "checkouts"
}

// Order is one per-product line of a checkout. PriceEach is frozen at
// checkout time so later product price changes never touch history.
type Order struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	CheckoutID string    `gorm:"column:checkout_id;type:uuid;not null;index" json:"checkout_id"`
	UserID     uint      `gorm:"column:user_id;not null" json:"user_id"`
	ProductID  uint      `gorm:"column:product_id;not null" json:"product_id"`
	Product    Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int       `gorm:"column:quantity;not null" json:"quantity"`
	PriceEach  int64     `gorm:"column:price_each;not null" json:"price_each"`
	TotalPrice int64     `gorm:"column:total_price;not null" json:"total_price"`
	Status     string    `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

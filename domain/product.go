package domain

import "time"

// Weight is stored in grams, Price in rupiah. Stock is the only field the
// checkout flow ever mutates; price and weight are snapshotted into orders.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SellerID    uint      `gorm:"column:seller_id;not null;index" json:"seller_id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Weight      int       `gorm:"column:weight;not null" json:"weight"`
	Price       int64     `gorm:"column:price;not null" json:"price"`
	Stock       int       `gorm:"column:stock;not null;default:0" json:"stock"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFilter narrows FindAll results. Zero values mean "no filter".
type ProductFilter struct {
	SellerID uint
	Search   string
	MinPrice int64
	MaxPrice int64
	InStock  bool
}

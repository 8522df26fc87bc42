package domain

import "time"

type Address struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Label         string    `gorm:"column:label;not null" json:"label"`
	RecipientName string    `gorm:"column:recipient_name;not null" json:"recipient_name"`
	Phone         string    `gorm:"column:phone;not null" json:"phone"`
	AddressLine   string    `gorm:"column:address_line;type:text;not null" json:"address_line"`
	City          string    `gorm:"column:city;not null" json:"city"`
	Province      string    `gorm:"column:province;not null" json:"province"`
	PostalCode    string    `gorm:"column:postal_code;not null" json:"postal_code"`
	IsDefault     bool      `gorm:"column:is_default;default:false" json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Address) TableName() string {
	return "user_addresses"
}

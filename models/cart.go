package models

import (
	"time"

	"github.com/storelane/storefront-api/pricing"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index:idx_cart_product,unique" json:"-"`
	ProductID   uint      `gorm:"index:idx_cart_product,unique" json:"product_id"`
	ProductName string    `json:"product_name"`
	// Price is the effective unit price snapshotted at the last add; it does
	// not track later catalog changes.
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Total recomputes the cart total from its items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return pricing.Round2(total)
}

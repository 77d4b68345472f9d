package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	SalePrice   *float64       `json:"sale_price,omitempty"`
	SaleEndDate *time.Time     `json:"sale_end_date,omitempty"`
	Image       string         `json:"image"`
	Stock       int            `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint           `gorm:"index" json:"category_id"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectivePrice returns the sale price while a sale is running, else the
// list price. A sale without an end date never expires.
func (p *Product) EffectivePrice(now time.Time) float64 {
	if p.SalePrice == nil {
		return p.Price
	}
	if p.SaleEndDate != nil && !p.SaleEndDate.After(now) {
		return p.Price
	}
	return *p.SalePrice
}

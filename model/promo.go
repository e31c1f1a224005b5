package model

import (
	"time"

	"gorm.io/gorm"
)

// Promo groups products under a campaign banner shown on the storefront.
// Per-product discounts live on Product itself; a promo only ties them together.
type Promo struct {
	gorm.Model
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Active      bool       `json:"active" gorm:"default:true"`
	Products    []Product  `json:"products,omitempty" gorm:"many2many:promo_products"`
}

func (p *Promo) Running(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

type SpecialEvent struct {
	gorm.Model
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Active      bool       `json:"active" gorm:"default:true"`
}

package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryCombo     ProductCategory = "combo"
	CategoryCoffee    ProductCategory = "coffee"
	CategoryTea       ProductCategory = "tea"
	CategoryNonCoffee ProductCategory = "non_coffee"
	CategoryBread     ProductCategory = "bread"
	CategoryBites     ProductCategory = "bites"
	CategoryBottled   ProductCategory = "bottled"
)

const (
	ProductAvailable   = "available"
	ProductUnavailable = "unavailable"
)

func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryCombo, CategoryCoffee, CategoryTea, CategoryNonCoffee,
		CategoryBread, CategoryBites, CategoryBottled:
		return true
	}
	return false
}

type Product struct {
	gorm.Model
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	OriginalPrice   float64         `json:"original_price"`
	DiscountPercent float64         `json:"discount_percent"`
	IsPromo         bool            `json:"is_promo"`
	Category        ProductCategory `json:"category" gorm:"type:varchar(20);index"`
	Status          string          `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Image           string          `json:"image"`
	PromoValidUntil *time.Time      `json:"promo_valid_until"`
}

// DisplayPrice is the price the customer actually pays right now. For promo
// items it is derived from the original price and the discount, never stored;
// a lapsed promo sells at the regular price.
func (p *Product) DisplayPrice() float64 {
	return p.PriceAt(time.Now())
}

// PriceAt returns the price in effect at the given time.
func (p *Product) PriceAt(now time.Time) float64 {
	if p.PromoActive(now) {
		return p.OriginalPrice - p.OriginalPrice*p.DiscountPercent/100
	}
	return p.Price
}

func (p *Product) PromoActive(now time.Time) bool {
	if !p.IsPromo {
		return false
	}
	return p.PromoValidUntil == nil || p.PromoValidUntil.After(now)
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayPrice(t *testing.T) {
	promo := Product{
		Name:            "Kopi Susu",
		OriginalPrice:   100000,
		DiscountPercent: 20,
		IsPromo:         true,
	}
	assert.Equal(t, float64(80000), promo.DisplayPrice())

	regular := Product{Name: "Es Teh", Price: 8000}
	assert.Equal(t, float64(8000), regular.DisplayPrice())

	past := time.Now().Add(-time.Hour)
	lapsed := Product{
		Name:            "Kopi Susu",
		Price:           95000,
		OriginalPrice:   100000,
		DiscountPercent: 20,
		IsPromo:         true,
		PromoValidUntil: &past,
	}
	assert.Equal(t, float64(95000), lapsed.DisplayPrice())
}

func TestPriceAt(t *testing.T) {
	until := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	promo := Product{
		Price:           95000,
		OriginalPrice:   100000,
		DiscountPercent: 20,
		IsPromo:         true,
		PromoValidUntil: &until,
	}

	assert.Equal(t, float64(80000), promo.PriceAt(until.Add(-time.Hour)))
	assert.Equal(t, float64(95000), promo.PriceAt(until.Add(time.Hour)))
}

func TestPromoActive(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	openEnded := Product{IsPromo: true}
	assert.True(t, openEnded.PromoActive(now))

	running := Product{IsPromo: true, PromoValidUntil: &future}
	assert.True(t, running.PromoActive(now))

	expired := Product{IsPromo: true, PromoValidUntil: &past}
	assert.False(t, expired.PromoActive(now))

	regular := Product{PromoValidUntil: &future}
	assert.False(t, regular.PromoActive(now))
}

func TestPromoRunning(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Promo{Active: true}).Running(now))
	assert.True(t, (&Promo{Active: true, StartsAt: &past, EndsAt: &future}).Running(now))
	assert.False(t, (&Promo{Active: false}).Running(now))
	assert.False(t, (&Promo{Active: true, StartsAt: &future}).Running(now))
	assert.False(t, (&Promo{Active: true, EndsAt: &past}).Running(now))
}

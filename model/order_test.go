package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 15000},
			{Quantity: 1, UnitPrice: 20000},
		},
	}
	assert.Equal(t, float64(50000), order.ComputeTotal())

	empty := Order{}
	assert.Equal(t, float64(0), empty.ComputeTotal())
}

func TestComputeSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 12500}
	assert.Equal(t, float64(37500), item.ComputeSubtotal())
}

func TestPaymentActive(t *testing.T) {
	now := time.Now()

	active := Payment{Status: PaymentUnpaid, ExpiresAt: now.Add(10 * time.Minute)}
	assert.True(t, active.Active(now))

	expired := Payment{Status: PaymentUnpaid, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.Active(now))
	assert.True(t, expired.Expired(now))

	paid := Payment{Status: PaymentPaid, ExpiresAt: now.Add(10 * time.Minute)}
	assert.False(t, paid.Active(now))
}

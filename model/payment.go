package model

import (
	"time"

	"gorm.io/gorm"
)

const MethodQris = "qris"

type Payment struct {
	gorm.Model
	OrderID uint          `json:"order_id" gorm:"index"`
	Amount  float64       `json:"amount"`
	Status  PaymentStatus `json:"status" gorm:"type:varchar(20);default:'unpaid'"`
	Method  string        `json:"method" gorm:"type:varchar(20)"`
	// Reference is the renderable QR payload handed to the customer.
	Reference string     `json:"reference"`
	ExpiresAt time.Time  `json:"expires_at"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

func (p *Payment) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// Active means the payment can still be settled: unpaid and not yet expired.
// At most one active payment may exist per order.
func (p *Payment) Active(now time.Time) bool {
	return p.Status == PaymentUnpaid && !p.Expired(now)
}

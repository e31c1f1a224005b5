package payment

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"kedai/model"
)

// Sweeper cancels QRIS payments that passed their expiry while still unpaid.
// The owning order stays pending; staff decide whether to re-issue a session
// or cancel the order.
type Sweeper struct {
	DB       *gorm.DB
	Interval time.Duration
}

func NewSweeper(db *gorm.DB) *Sweeper {
	return &Sweeper{DB: db, Interval: time.Minute}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Payment sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	result := s.DB.Model(&model.Payment{}).
		Where("status = ? AND expires_at < ?", model.PaymentUnpaid, time.Now()).
		Update("status", model.PaymentCancelled)
	if result.Error != nil {
		log.Printf("Payment sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Payment sweep cancelled %d expired payment(s)", result.RowsAffected)
	}
}

// Package payment holds the QRIS settlement helpers: a status poller used to
// wait for a payment to settle, and a background sweeper that cancels
// payments left unpaid past their expiry.
package payment

import (
	"context"
	"errors"
	"time"

	"kedai/model"
)

var ErrPollExhausted = errors.New("payment status polling exhausted its attempts")

// StatusFunc resolves the current status of a payment.
type StatusFunc func(ctx context.Context, paymentID uint) (model.PaymentStatus, error)

// Poller repeatedly checks a payment until it reaches a terminal status
// (paid or cancelled), the attempt budget runs out, or ctx is cancelled.
// Intervals grow exponentially up to MaxInterval.
type Poller struct {
	Interval    time.Duration
	MaxInterval time.Duration
	MaxAttempts int
	Check       StatusFunc
}

func NewPoller(check StatusFunc) *Poller {
	return &Poller{
		Interval:    5 * time.Second,
		MaxInterval: 40 * time.Second,
		MaxAttempts: 60,
		Check:       check,
	}
}

// Wait blocks until the payment settles or polling gives up. Once a terminal
// status is observed no further checks are issued. Transient check errors
// consume an attempt but do not abort the loop.
func (p *Poller) Wait(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
	interval := p.Interval
	last := model.PaymentUnpaid

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		status, err := p.Check(ctx, paymentID)
		if err == nil {
			last = status
			if status == model.PaymentPaid || status == model.PaymentCancelled {
				return status, nil
			}
		} else if ctx.Err() != nil {
			return last, ctx.Err()
		}

		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		case <-timer.C:
		}

		interval = p.nextInterval(interval)
	}

	return last, ErrPollExhausted
}

func (p *Poller) nextInterval(cur time.Duration) time.Duration {
	next := cur * 2
	if p.MaxInterval > 0 && next > p.MaxInterval {
		next = p.MaxInterval
	}
	return next
}

package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kedai/model"
)

func fastPoller(check StatusFunc) *Poller {
	return &Poller{
		Interval:    time.Millisecond,
		MaxInterval: 4 * time.Millisecond,
		MaxAttempts: 10,
		Check:       check,
	}
}

func TestWaitStopsAfterPaid(t *testing.T) {
	calls := 0
	p := fastPoller(func(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
		calls++
		if calls < 3 {
			return model.PaymentUnpaid, nil
		}
		return model.PaymentPaid, nil
	})

	status, err := p.Wait(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, status)
	assert.Equal(t, 3, calls, "no further checks once paid")
}

func TestWaitStopsOnCancelledPayment(t *testing.T) {
	p := fastPoller(func(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
		return model.PaymentCancelled, nil
	})

	status, err := p.Wait(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentCancelled, status)
}

func TestWaitExhaustsAttempts(t *testing.T) {
	calls := 0
	p := fastPoller(func(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
		calls++
		return model.PaymentUnpaid, nil
	})

	status, err := p.Wait(context.Background(), 1)
	assert.ErrorIs(t, err, ErrPollExhausted)
	assert.Equal(t, model.PaymentUnpaid, status)
	assert.Equal(t, p.MaxAttempts, calls)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPoller(func(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
		cancel()
		return model.PaymentUnpaid, nil
	})
	p.Interval = time.Minute // cancellation must win over the timer

	start := time.Now()
	_, err := p.Wait(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitSurvivesTransientErrors(t *testing.T) {
	calls := 0
	p := fastPoller(func(ctx context.Context, paymentID uint) (model.PaymentStatus, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection reset")
		}
		return model.PaymentPaid, nil
	})

	status, err := p.Wait(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, status)
	assert.Equal(t, 2, calls)
}

func TestNextIntervalBackoff(t *testing.T) {
	p := &Poller{Interval: time.Second, MaxInterval: 5 * time.Second}

	assert.Equal(t, 2*time.Second, p.nextInterval(time.Second))
	assert.Equal(t, 4*time.Second, p.nextInterval(2*time.Second))
	assert.Equal(t, 5*time.Second, p.nextInterval(4*time.Second))
	assert.Equal(t, 5*time.Second, p.nextInterval(5*time.Second))
}

package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kedai/model"
)

func TestResolveSession(t *testing.T) {
	now := time.Now()

	assert.Equal(t, sessionCreate, resolveSession(nil, now))

	paid := &model.Payment{Status: model.PaymentPaid, ExpiresAt: now.Add(time.Minute)}
	assert.Equal(t, sessionRejectPaid, resolveSession(paid, now))

	// A paid session blocks re-issuing even past its expiry.
	paidExpired := &model.Payment{Status: model.PaymentPaid, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, sessionRejectPaid, resolveSession(paidExpired, now))

	active := &model.Payment{Status: model.PaymentUnpaid, ExpiresAt: now.Add(time.Minute)}
	assert.Equal(t, sessionReuse, resolveSession(active, now))

	expired := &model.Payment{Status: model.PaymentUnpaid, ExpiresAt: now.Add(-time.Minute)}
	assert.Equal(t, sessionReplaceExpired, resolveSession(expired, now))

	cancelled := &model.Payment{Status: model.PaymentCancelled, ExpiresAt: now.Add(time.Minute)}
	assert.Equal(t, sessionCreate, resolveSession(cancelled, now))
}

package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kedai/database"
	"kedai/model"
	"kedai/payment"
)

type sessionAction int

const (
	sessionCreate sessionAction = iota
	sessionReuse
	sessionReplaceExpired
	sessionRejectPaid
)

// resolveSession decides what a new QRIS request does with the order's latest
// payment row, keeping at most one live session per order.
func resolveSession(existing *model.Payment, now time.Time) sessionAction {
	switch {
	case existing == nil:
		return sessionCreate
	case existing.Status == model.PaymentPaid:
		return sessionRejectPaid
	case existing.Active(now):
		return sessionReuse
	case existing.Status == model.PaymentUnpaid:
		// Expired but never swept.
		return sessionReplaceExpired
	default:
		return sessionCreate
	}
}

// latestPayment returns the newest payment row for an order, or nil when the
// order has none.
func latestPayment(db *gorm.DB, orderID uint) (*model.Payment, error) {
	var p model.Payment
	err := db.Where("order_id = ?", orderID).Order("created_at DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// qrisValidity is how long a generated QR payload can be scanned before the
// sweeper cancels the session.
const qrisValidity = 15 * time.Minute

// CreateQrisPayment opens a payment session for an order. Calling it again
// while a session is still active returns that session unchanged, so a
// double-submitting client cannot end up with two live payments.
func CreateQrisPayment(c *gin.Context) {
	type Request struct {
		OrderID uint    `json:"order_id" binding:"required"`
		Amount  float64 `json:"amount" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Order ID and amount are required",
		})
		return
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Unexpected error occurred",
			})
		}
	}()

	// Locking the order row serializes concurrent session requests for the
	// same order, so two racing checkouts cannot both pass the existence
	// check below and end up with two live payments.
	var order model.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, req.OrderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch order: %v", err),
			})
		}
		return
	}

	if order.Status == model.OrderCancelled {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Cannot open a payment for a cancelled order",
		})
		return
	}

	if req.Amount != order.TotalAmount {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Amount does not match the order total",
		})
		return
	}

	now := time.Now()

	existing, err := latestPayment(tx, order.ID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to check existing payment: %v", err),
		})
		return
	}

	switch resolveSession(existing, now) {
	case sessionRejectPaid:
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Order is already paid",
		})
		return
	case sessionReuse:
		tx.Rollback()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Active payment session reused",
			"data":    existing,
		})
		return
	case sessionReplaceExpired:
		if err := tx.Model(existing).Update("status", model.PaymentCancelled).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to close expired payment: %v", err),
			})
			return
		}
	}

	payment := model.Payment{
		OrderID:   order.ID,
		Amount:    order.TotalAmount,
		Status:    model.PaymentUnpaid,
		Method:    model.MethodQris,
		Reference: fmt.Sprintf("QRIS-%s", uuid.NewString()),
		ExpiresAt: now.Add(qrisValidity),
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create payment: %v", err),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Transaction failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment session created",
		"data":    payment,
	})
}

func GetPaymentByID(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid payment ID format",
		})
		return
	}

	var payment model.Payment
	if err := database.DB.First(&payment, uint(paymentID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Payment not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment retrieved successfully",
		"data":    payment,
	})
}

// GetPaymentStatusByOrder serves the storefront's status poll: the latest
// payment for the order, by order id.
func GetPaymentStatusByOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid order ID format",
		})
		return
	}

	p, err := latestPayment(database.DB, uint(orderID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
		})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "No payment found for this order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment status retrieved successfully",
		"data": gin.H{
			"payment_id": p.ID,
			"order_id":   p.OrderID,
			"status":     p.Status,
			"expires_at": p.ExpiresAt,
			"paid_at":    p.PaidAt,
		},
	})
}

// WaitForPayment long-polls a payment until it settles or the wait budget
// runs out, sparing the storefront a status request every few seconds. The
// response always carries the latest observed status.
func WaitForPayment(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid payment ID format",
		})
		return
	}

	var exists model.Payment
	if err := database.DB.First(&exists, uint(paymentID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Payment not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
			})
		}
		return
	}

	poller := payment.NewPoller(func(ctx context.Context, id uint) (model.PaymentStatus, error) {
		var p model.Payment
		if err := database.DB.WithContext(ctx).First(&p, id).Error; err != nil {
			return "", err
		}
		return p.Status, nil
	})
	poller.Interval = 2 * time.Second
	poller.MaxInterval = 5 * time.Second
	poller.MaxAttempts = 15

	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	status, err := poller.Wait(ctx, uint(paymentID))
	settled := err == nil
	if err != nil && !errors.Is(err, payment.ErrPollExhausted) &&
		!errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to watch payment: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"payment_id": uint(paymentID),
			"status":     status,
			"settled":    settled,
		},
	})
}

// UpdatePaymentStatus is the staff toggle: force a payment to paid, unpaid or
// cancelled. This is the only settlement path besides the simulator.
func UpdatePaymentStatus(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid payment ID format",
		})
		return
	}

	type Request struct {
		Status model.PaymentStatus `json:"status" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Status is required",
		})
		return
	}
	if !model.ValidPaymentStatus(req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Unknown payment status",
		})
		return
	}

	var payment model.Payment
	if err := database.DB.First(&payment, uint(paymentID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Payment not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
			})
		}
		return
	}

	payment.Status = req.Status
	switch req.Status {
	case model.PaymentPaid:
		now := time.Now()
		payment.PaidAt = &now
	case model.PaymentUnpaid:
		payment.PaidAt = nil
	}

	if err := database.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to update payment: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment status updated successfully",
		"data":    payment,
	})
}

// SimulatePayment plays the part of the gateway callback: it settles an
// active session as if the customer had scanned and paid.
func SimulatePayment(c *gin.Context) {
	type Request struct {
		PaymentID uint `json:"payment_id" binding:"required"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Payment ID is required",
		})
		return
	}

	var payment model.Payment
	if err := database.DB.First(&payment, req.PaymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Payment not found",
			})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
			})
		}
		return
	}

	if !payment.Active(time.Now()) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Payment is no longer active",
		})
		return
	}

	now := time.Now()
	payment.Status = model.PaymentPaid
	payment.PaidAt = &now

	if err := database.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to settle payment: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment settled",
		"data":    payment,
	})
}

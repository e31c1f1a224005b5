package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kedai/cart"
	"kedai/database"
	"kedai/model"
	"kedai/utils"
)

// queueLockID serializes queue-number allocation across concurrent checkouts.
const queueLockID = 874512

// preloadLatestPayment orders the has-one preload so that when an order has
// accumulated cancelled sessions, the newest payment row is the one assigned.
func preloadLatestPayment(db *gorm.DB) *gorm.DB {
	return db.Order("payments.created_at ASC")
}

func CreateOrder(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	phone, fieldErr := ValidateCheckout(&req)
	if fieldErr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   fieldErr.Message,
			"field":   fieldErr.Field,
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

	ids := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ProductID)
	}

	var products []model.Product
	if err := tx.Where("id IN ? AND status = ?", ids, model.ProductAvailable).Find(&products).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to fetch products: %v", err),
		})
		return
	}

	byID := make(map[uint]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	draft := cart.New()
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			tx.Rollback()
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Product %d is not available", item.ProductID),
				"field":   "items",
			})
			return
		}
		draft.Add(product, item.Quantity)
	}

	if draft.Empty() || draft.Total() <= 0 {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Order total must be greater than zero",
			"field":   "items",
		})
		return
	}

	queueNumber, err := nextQueueNumber(tx)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to allocate queue number: %v", err),
		})
		return
	}

	order := model.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		OrderType:     req.OrderType,
		QueueNumber:   queueNumber,
		TotalAmount:   draft.Total(),
		Status:        model.OrderPending,
		Notes:         req.Notes,
	}
	for _, line := range draft.Lines() {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		})
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to create order: %v", err),
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
		"message": "Order created successfully",
		"data":    order,
	})
}

// nextQueueNumber assigns the per-day ticket number. An advisory transaction
// lock keeps concurrent checkouts from reading the same maximum.
func nextQueueNumber(tx *gorm.DB) (int, error) {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", queueLockID).Error; err != nil {
		return 0, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var last int
	err := tx.Model(&model.Order{}).
		Where("created_at >= ?", startOfDay).
		Select("COALESCE(MAX(queue_number), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

func ListOrders(c *gin.Context) {
	page, limit := utils.ParsePageQuery(c.Query("page"), c.Query("limit"))

	query := database.DB.Model(&model.Order{})

	if status := c.Query("status"); status != "" {
		if !model.ValidOrderStatus(model.OrderStatus(status)) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid order status filter",
			})
			return
		}
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", pattern, pattern)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid date filter, expected YYYY-MM-DD",
			})
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", day, day.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to count orders: %v", err),
		})
		return
	}

	pagination := utils.NewPagination(page, limit, total)

	var orders []model.Order
	if pagination.InRange() {
		err := query.
			Preload("Items").
			Preload("Payment", preloadLatestPayment).
			Order("created_at DESC").
			Offset(pagination.Offset()).
			Limit(pagination.Limit).
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to fetch orders: %v", err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Orders retrieved successfully",
		"data":       orders,
		"pagination": pagination,
	})
}

func GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid order ID format",
		})
		return
	}

	var order model.Order
	err = database.DB.
		Preload("Items.Product").
		Preload("Payment", preloadLatestPayment).
		First(&order, uint(orderID)).Error
	if err != nil {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order retrieved successfully",
		"data":    order,
	})
}

func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid order ID format",
		})
		return
	}

	type Request struct {
		Status model.OrderStatus `json:"status" binding:"required"`
		Notes  string            `json:"notes"`
	}
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Status is required",
		})
		return
	}

	if !model.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Unknown order status",
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

	var order model.Order
	if err := tx.First(&order, uint(orderID)).Error; err != nil {
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

	// Cancelled-and-reissued sessions leave several payment rows; only the
	// newest one speaks for the order.
	order.Payment, err = latestPayment(tx, order.ID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to fetch payment: %v", err),
		})
		return
	}

	if !model.ValidOrderTransition(order.Status, req.Status) {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Cannot move order from %s to %s", order.Status, req.Status),
		})
		return
	}

	if req.Status == model.OrderCompleted && !model.CanComplete(order.Status, order.Payment) {
		tx.Rollback()
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   "Payment must be settled before completing the order",
		})
		return
	}

	// Cancelling the order also cancels any still-active payment.
	if req.Status == model.OrderCancelled && order.Payment != nil && order.Payment.Status == model.PaymentUnpaid {
		if err := tx.Model(order.Payment).Update("status", model.PaymentCancelled).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   fmt.Sprintf("Failed to cancel payment: %v", err),
			})
			return
		}
		order.Payment.Status = model.PaymentCancelled
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Notes != "" {
		updates["notes"] = req.Notes
		order.Notes = req.Notes
	}
	order.Status = req.Status

	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to update order: %v", err),
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
		"message": "Order status updated successfully",
		"data":    order,
	})
}

// DeleteOrder removes an order for good, items and payment included. There is
// no soft delete or audit trail for orders.
func DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid order ID format",
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

	var order model.Order
	if err := tx.First(&order, uint(orderID)).Error; err != nil {
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

	if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&model.OrderItem{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to delete order items: %v", err),
		})
		return
	}
	if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&model.Payment{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to delete payment: %v", err),
		})
		return
	}
	if err := tx.Unscoped().Delete(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to delete order: %v", err),
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
		"message": "Order deleted successfully",
		"data":    gin.H{"order_id": order.ID},
	})
}

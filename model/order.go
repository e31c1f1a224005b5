package model

import (
	"gorm.io/gorm"
)

type OrderType string

const (
	OrderDineIn   OrderType = "dine_in"
	OrderTakeAway OrderType = "take_away"
)

func ValidOrderType(t OrderType) bool {
	return t == OrderDineIn || t == OrderTakeAway
}

type Order struct {
	gorm.Model
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone" gorm:"index"`
	OrderType     OrderType   `json:"order_type" gorm:"type:varchar(20)"`
	QueueNumber   int         `json:"queue_number"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Notes         string      `json:"notes"`
	Payment       *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"order_id" gorm:"index"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
	// UnitPrice is snapshotted at order time; later product price changes
	// must not affect existing orders.
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

func (i *OrderItem) ComputeSubtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// ComputeTotal sums item subtotals. The stored TotalAmount must always equal
// this value.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for i := range o.Items {
		total += o.Items[i].ComputeSubtotal()
	}
	return total
}

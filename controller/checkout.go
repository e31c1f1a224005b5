package controller

import (
	"fmt"
	"strings"

	"kedai/model"
	"kedai/utils"
)

type CheckoutItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	OrderType     model.OrderType `json:"order_type"`
	Notes         string          `json:"notes"`
	Items         []CheckoutItem  `json:"items"`
}

// FieldError carries the offending field so the client can attach the message
// to the right input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateCheckout verifies a checkout request before anything touches the
// database. It returns the normalized phone number on success.
func ValidateCheckout(req *CheckoutRequest) (string, *FieldError) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return "", &FieldError{Field: "customer_name", Message: "customer name is required"}
	}

	phone, err := utils.NormalizePhone(req.CustomerPhone)
	if err != nil {
		return "", &FieldError{Field: "customer_phone", Message: err.Error()}
	}

	if !model.ValidOrderType(req.OrderType) {
		return "", &FieldError{Field: "order_type", Message: "order type must be dine_in or take_away"}
	}

	if len(req.Items) == 0 {
		return "", &FieldError{Field: "items", Message: "cart is empty"}
	}
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return "", &FieldError{Field: "items", Message: "item is missing a product id"}
		}
		if item.Quantity < 1 {
			return "", &FieldError{Field: "items", Message: "item quantity must be at least 1"}
		}
	}

	return phone, nil
}

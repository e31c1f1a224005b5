package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"kedai/model"
)

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerName:  "Budi",
		CustomerPhone: "081234567890",
		OrderType:     model.OrderDineIn,
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 2}},
	}
}

func TestValidateCheckout(t *testing.T) {
	req := validRequest()
	phone, fieldErr := ValidateCheckout(&req)
	assert.Nil(t, fieldErr)
	assert.Equal(t, "6281234567890", phone)
}

func TestValidateCheckoutFieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
		field  string
	}{
		{"missing name", func(r *CheckoutRequest) { r.CustomerName = "" }, "customer_name"},
		{"whitespace name", func(r *CheckoutRequest) { r.CustomerName = "   " }, "customer_name"},
		{"short phone", func(r *CheckoutRequest) { r.CustomerPhone = "0812345" }, "customer_phone"},
		{"non-numeric phone", func(r *CheckoutRequest) { r.CustomerPhone = "0812abc67890" }, "customer_phone"},
		{"bad order type", func(r *CheckoutRequest) { r.OrderType = "delivery" }, "order_type"},
		{"empty cart", func(r *CheckoutRequest) { r.Items = nil }, "items"},
		{"zero quantity", func(r *CheckoutRequest) { r.Items[0].Quantity = 0 }, "items"},
		{"missing product id", func(r *CheckoutRequest) { r.Items[0].ProductID = 0 }, "items"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, fieldErr := ValidateCheckout(&req)
			if assert.NotNil(t, fieldErr) {
				assert.Equal(t, tt.field, fieldErr.Field)
			}
		})
	}
}

// An invalid checkout must be rejected before the handler touches storage;
// this runs the real handler with no database configured.
func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders", CreateOrder)

	body := `{"customer_name":"Budi","customer_phone":"081234567890","order_type":"dine_in","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "items")
}

func TestCreateOrderRejectsBadPhone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/orders", CreateOrder)

	body := `{"customer_name":"Budi","customer_phone":"12ab","order_type":"dine_in","items":[{"product_id":1,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer_phone")
}

package model

import "testing"

func TestValidOrderTransition(t *testing.T) {
	cases := []struct {
		from  OrderStatus
		to    OrderStatus
		valid bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderCompleted, false},
		{OrderPending, OrderPending, false},
		{OrderProcessing, OrderCompleted, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderProcessing, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCompleted, OrderProcessing, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderProcessing, false},
		{"unknown", OrderProcessing, false},
	}

	for _, tt := range cases {
		if got := ValidOrderTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("ValidOrderTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled} {
		if !ValidOrderStatus(s) {
			t.Fatalf("ValidOrderStatus(%q)=false, want true", s)
		}
	}
	if ValidOrderStatus("done") {
		t.Fatal("ValidOrderStatus(\"done\")=true, want false")
	}
}

func TestCanComplete(t *testing.T) {
	paid := &Payment{Status: PaymentPaid}
	unpaid := &Payment{Status: PaymentUnpaid}
	cancelled := &Payment{Status: PaymentCancelled}

	cases := []struct {
		from    OrderStatus
		payment *Payment
		want    bool
	}{
		{OrderProcessing, paid, true},
		{OrderProcessing, unpaid, false},
		{OrderProcessing, cancelled, false},
		{OrderProcessing, nil, false},
		{OrderPending, paid, false},
		{OrderCompleted, paid, false},
		{OrderCancelled, paid, false},
	}

	for _, tt := range cases {
		if got := CanComplete(tt.from, tt.payment); got != tt.want {
			t.Fatalf("CanComplete(%q, %+v)=%v, want %v", tt.from, tt.payment, got, tt.want)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentUnpaid, PaymentPaid, PaymentCancelled} {
		if !ValidPaymentStatus(s) {
			t.Fatalf("ValidPaymentStatus(%q)=false, want true", s)
		}
	}
	if ValidPaymentStatus("refunded") {
		t.Fatal("ValidPaymentStatus(\"refunded\")=true, want false")
	}
}

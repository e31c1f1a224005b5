package model

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// orderTransitions lists the statuses reachable from each status. Orders only
// move forward; cancellation is terminal and reachable until completion.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

func ValidOrderTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanComplete gates the move to completed: the transition must be legal and
// the order's payment settled. The rule holds for every caller, cashier
// console and admin screen alike.
func CanComplete(from OrderStatus, p *Payment) bool {
	if !ValidOrderTransition(from, OrderCompleted) {
		return false
	}
	return p != nil && p.Status == PaymentPaid
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

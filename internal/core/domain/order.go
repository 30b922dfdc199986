package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderDone       OrderStatus = "DONE"
	OrderReturned   OrderStatus = "RETURNED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderInProgress, OrderDone, OrderReturned:
		return true
	}
	return false
}

// Order is a purchase of Quantity pairs of one shoe. Shoe is populated when the
// store loads the order together with its product.
type Order struct {
	ID          int64
	ShoeID      int64
	Shoe        *Shoe
	Status      OrderStatus
	Description string
	Date        time.Time
	Quantity    int
}

package domain

import (
	"fmt"
	"time"
)

// Money is an amount in minor currency units (cents).
type Money int64

// String renders m as a decimal with two fraction digits.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MoneyFromUnits converts whole currency units into Money.
func MoneyFromUnits(units int64) Money {
	return Money(units * 100)
}

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "CARD"
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []PaymentMethod{PaymentCard, PaymentCash, PaymentTransfer}

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionRefunded  TransactionStatus = "REFUNDED"
)

// Transaction is a payment recorded against an order. Order is populated when
// the store loads it together with the order.
type Transaction struct {
	ID              int64
	OrderID         int64
	Order           *Order
	Amount          Money
	TransactionDate time.Time
	PaymentMethod   PaymentMethod
	Status          TransactionStatus
}

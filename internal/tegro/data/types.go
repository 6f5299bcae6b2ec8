package data

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status values other than these two are defined by the payment service
// and only arrive through reconciliation.
type Status int

const (
	UnknownStatus Status = -1
	PendingStatus Status = 0
)

type Order struct {
	ID              int64
	ShopID          string
	Reference       string
	RemoteID        *int64
	CreatedAt       time.Time
	PaidAt          *time.Time
	PaymentSystemID *int
	Currency        *string
	CurrencyID      *int
	Amount          decimal.NullDecimal
	Fee             decimal.NullDecimal
	Status          Status
	TestOrder       int
}

type OrderField struct {
	OrderID int64
	Name    string
	Value   string
}

type OrderReceiptItem struct {
	OrderID int64
	Name    string
	Count   decimal.Decimal
	Price   decimal.Decimal
}

// OrderCheck carries the fields refreshed from an order status check.
type OrderCheck struct {
	Status     Status
	CurrencyID int
	Fee        decimal.Decimal
	PaidAt     *time.Time
}

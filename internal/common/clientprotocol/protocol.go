package clientprotocol

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the merchant-facing view of a locally stored order.
type Order struct {
	Reference       string           `json:"order_id"`
	ShopID          string           `json:"shop_id"`
	RemoteID        *int64           `json:"tegro_order_id,omitempty"`
	Status          int              `json:"status"`
	Currency        *string          `json:"currency,omitempty"`
	CurrencyID      *int             `json:"currency_id,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Fee             *decimal.Decimal `json:"fee,omitempty"`
	PaymentSystemID *int             `json:"payment_system,omitempty"`
	TestOrder       int              `json:"test_order"`
	CreatedAt       time.Time        `json:"date_created"`
	PaidAt          *time.Time       `json:"date_payed,omitempty"`
}

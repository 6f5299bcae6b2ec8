package tegroprotocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Success ResponseType = "success"
	Error   ResponseType = "error"
)

// DateTimeLayout is the format of date fields in API responses, in UTC.
const DateTimeLayout = "2006-01-02 15:04:05"

type ResponseType string

// Response is the envelope shared by every API operation.
type Response struct {
	Type ResponseType    `json:"type"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data,omitempty"`

	// Raw is the response body exactly as received.
	Raw []byte `json:"-"`
}

var ErrNoData = errors.New("response has no data")

// DecodeData unmarshals the data member of the response into v.
func (r Response) DecodeData(v any) error {
	data := bytes.TrimSpace(r.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return ErrNoData
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

type CreatedOrder struct {
	ID  json.Number `json:"id"`
	URL string      `json:"url"`
}

type OrderInfo struct {
	ID              int64           `json:"id"`
	DateCreated     string          `json:"date_created"`
	DatePayed       *string         `json:"date_payed"`
	Status          int             `json:"status"`
	PaymentSystemID int             `json:"payment_system_id"`
	CurrencyID      int             `json:"currency_id"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	Email           string          `json:"email"`
	TestOrder       int             `json:"test_order"`
	PaymentID       string          `json:"payment_id"`
}

// PayedAt parses DatePayed; ok is false while the order is unpaid.
func (o OrderInfo) PayedAt() (t time.Time, ok bool, err error) {
	if o.DatePayed == nil || *o.DatePayed == "" {
		return time.Time{}, false, nil
	}
	t, err = time.ParseInLocation(DateTimeLayout, *o.DatePayed, time.UTC)
	if err != nil {
		return time.Time{}, false, err //nolint:wrapcheck // unnecessary
	}
	return t, true, nil
}

// CallbackReply is what the payment-status endpoint answers to the remote service.
type CallbackReply struct {
	Type ResponseType `json:"type"`
	Desc string       `json:"desc"`
}

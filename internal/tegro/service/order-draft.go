package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
)

// orderDraft holds the rows written before the payment service is called.
type orderDraft struct {
	order  data.Order
	fields []data.OrderField
	items  []data.OrderReceiptItem
}

func newOrderDraft(params apiclient.Params, shopID string, now time.Time) (orderDraft, error) {
	draft := orderDraft{
		order: data.Order{
			ShopID:    shopID,
			CreatedAt: now,
			Status:    data.UnknownStatus,
		},
	}
	order := &draft.order

	if v, ok := present(params, "currency"); ok {
		currency, err := apiclient.ToString(v)
		if err != nil {
			return orderDraft{}, fmt.Errorf("currency: %w", err)
		}
		order.Currency = &currency
	}
	if v, ok := present(params, "amount"); ok {
		amount, err := apiclient.ToDecimal(v)
		if err != nil {
			return orderDraft{}, fmt.Errorf("amount: %w", err)
		}
		order.Amount = decimal.NewNullDecimal(amount)
	}
	if v, ok := present(params, "payment_system"); ok {
		paymentSystem, err := apiclient.ToInt64(v)
		if err != nil {
			return orderDraft{}, fmt.Errorf("payment_system: %w", err)
		}
		id := int(paymentSystem)
		order.PaymentSystemID = &id
	}
	if v, ok := present(params, "order_id"); ok {
		reference, err := apiclient.ToString(v)
		if err != nil {
			return orderDraft{}, fmt.Errorf("order_id: %w", err)
		}
		order.Reference = reference
	}
	if v, ok := present(params, "test_order"); ok {
		testOrder, err := apiclient.ToInt64(v)
		if err != nil {
			return orderDraft{}, fmt.Errorf("test_order: %w", err)
		}
		order.TestOrder = int(testOrder)
	}

	fields, err := draftFields(params["fields"])
	if err != nil {
		return orderDraft{}, fmt.Errorf("fields: %w", err)
	}
	draft.fields = fields

	items, err := draftReceiptItems(params["receipt"])
	if err != nil {
		return orderDraft{}, fmt.Errorf("receipt: %w", err)
	}
	draft.items = items

	return draft, nil
}

func draftFields(raw any) ([]data.OrderField, error) {
	var values map[string]any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		values = v
	case apiclient.Params:
		values = v
	case map[string]string:
		values = make(map[string]any, len(v))
		for key, value := range v {
			values[key] = value
		}
	default:
		return nil, fmt.Errorf("%w: cannot use %T as fields", apiclient.ErrInvalidParam, raw)
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]data.OrderField, 0, len(names))
	for _, name := range names {
		value, err := apiclient.ToString(values[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		fields = append(fields, data.OrderField{Name: name, Value: value})
	}
	return fields, nil
}

func draftReceiptItems(raw any) ([]data.OrderReceiptItem, error) {
	receipt, err := asMap(raw)
	if err != nil || receipt == nil {
		return nil, err
	}

	var rawItems []any
	switch v := receipt["items"].(type) {
	case nil:
		return nil, nil
	case []any:
		rawItems = v
	case []map[string]any:
		rawItems = make([]any, len(v))
		for i, item := range v {
			rawItems[i] = item
		}
	default:
		return nil, fmt.Errorf("%w: cannot use %T as receipt items", apiclient.ErrInvalidParam, v)
	}

	items := make([]data.OrderReceiptItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		values, err := asMap(rawItem)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		item := data.OrderReceiptItem{
			Count: decimal.Zero,
			Price: decimal.Zero,
		}
		if v, ok := present(values, "name"); ok {
			if item.Name, err = apiclient.ToString(v); err != nil {
				return nil, fmt.Errorf("item %d name: %w", i, err)
			}
		}
		if v, ok := present(values, "count"); ok {
			if item.Count, err = apiclient.ToDecimal(v); err != nil {
				return nil, fmt.Errorf("item %d count: %w", i, err)
			}
		}
		if v, ok := present(values, "price"); ok {
			if item.Price, err = apiclient.ToDecimal(v); err != nil {
				return nil, fmt.Errorf("item %d price: %w", i, err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func asMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	case apiclient.Params:
		return v, nil
	}
	return nil, fmt.Errorf("%w: cannot use %T as object", apiclient.ErrInvalidParam, raw)
}

func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

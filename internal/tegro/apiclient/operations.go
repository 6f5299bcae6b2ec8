package apiclient

import (
	"context"

	"go-tegro/internal/common/tegroprotocol"
)

const (
	OpCreateOrder = "createOrder"
	OpShops       = "shops"
	OpBalance     = "balance"
	OpOrder       = "order"
	OpOrders      = "orders"
)

// CreateOrder requests a direct payment link.
// Expected params: currency, amount, order_id, payment_system, fields, receipt.
func (c *Client) CreateOrder(ctx context.Context, params Params) (tegroprotocol.Response, error) {
	return c.Send(ctx, OpCreateOrder, params)
}

func (c *Client) Shops(ctx context.Context, params Params) (tegroprotocol.Response, error) {
	return c.Send(ctx, OpShops, params)
}

func (c *Client) Balance(ctx context.Context, params Params) (tegroprotocol.Response, error) {
	return c.Send(ctx, OpBalance, params)
}

// CheckOrder looks an order up by order_id (remote) or payment_id (local reference).
func (c *Client) CheckOrder(ctx context.Context, params Params) (tegroprotocol.Response, error) {
	return c.Send(ctx, OpOrder, params)
}

// ListOrders returns one page of orders; params: page.
func (c *Client) ListOrders(ctx context.Context, params Params) (tegroprotocol.Response, error) {
	return c.Send(ctx, OpOrders, params)
}

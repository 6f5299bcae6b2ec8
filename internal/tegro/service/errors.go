package service

import "errors"

var (
	ErrInvalidPayload     = errors.New("invalid request: shop_id, order_id, status are expected")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderParams = errors.New("invalid order parameters")
	ErrOrderStateDiverged = errors.New("remote order created but local order was not updated")
)

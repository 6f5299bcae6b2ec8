package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
)

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

// OrderRepository is the persistence collaborator. It deliberately has no
// delete operations.
type OrderRepository interface {
	InsertOrder(ctx context.Context, order *data.Order) (orderID int64, err error)
	InsertOrderField(ctx context.Context, field data.OrderField) error
	InsertOrderReceiptItem(ctx context.Context, item data.OrderReceiptItem) error
	UpdateOrderStatusAndRemoteID(ctx context.Context, orderID int64, status data.Status, remoteID *int64) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status data.Status) error
	FindOrderByShopAndReference(ctx context.Context, shopID string, reference string) (data.Order, error)
	FindOrderByShopAndRemoteID(ctx context.Context, shopID string, remoteID int64) (data.Order, error)
}

type PaymentAPI interface {
	CreateOrder(ctx context.Context, params apiclient.Params) (tegroprotocol.Response, error)
}

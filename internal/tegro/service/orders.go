package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-tegro/internal/common/clientprotocol"
	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

type Config struct {
	ShopID string
}

// Orders creates orders at the payment service while keeping a local record
// of every attempt.
type Orders struct {
	shopID             string
	transactionManager TransactionManager
	orderRepository    OrderRepository
	paymentAPI         PaymentAPI
	builder            *apiclient.Builder
	logger             *logging.ZapLogger
	now                func() time.Time
}

func NewOrders(
	cfg Config,
	transactionManager TransactionManager,
	orderRepository OrderRepository,
	paymentAPI PaymentAPI,
	logger *logging.ZapLogger,
) *Orders {
	return &Orders{
		shopID:             cfg.ShopID,
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
		paymentAPI:         paymentAPI,
		builder:            apiclient.NewBuilder(cfg.ShopID),
		logger:             logger,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder stores the order locally, registers it at the payment service
// with params as given and then marks the local order pending.
//
// When the payment service call fails the local order stays with status -1
// and no remote identifier. When the local update fails after a successful
// call the response is still returned along with ErrOrderStateDiverged.
func (o *Orders) CreateOrder(ctx context.Context, params apiclient.Params) (tegroprotocol.Response, error) {
	// Params the payment service request could not be built from never
	// reach storage.
	if _, err := o.builder.Normalize(params); err != nil {
		return tegroprotocol.Response{}, fmt.Errorf("%w: %w", ErrInvalidOrderParams, err)
	}
	draft, err := newOrderDraft(params, o.shopID, o.now())
	if err != nil {
		return tegroprotocol.Response{}, fmt.Errorf("%w: %w", ErrInvalidOrderParams, err)
	}

	var orderID int64
	err = o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		orderID, err = o.orderRepository.InsertOrder(ctx, &draft.order)
		if err != nil {
			return fmt.Errorf("inserting order failed: %w", err)
		}
		for _, field := range draft.fields {
			field.OrderID = orderID
			if err := o.orderRepository.InsertOrderField(ctx, field); err != nil {
				return fmt.Errorf("inserting order field %q failed: %w", field.Name, err)
			}
		}
		for _, item := range draft.items {
			item.OrderID = orderID
			if err := o.orderRepository.InsertOrderReceiptItem(ctx, item); err != nil {
				return fmt.Errorf("inserting receipt item failed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return tegroprotocol.Response{}, err //nolint:wrapcheck // unnecessary
	}
	ctx = logging.WithContextFields(ctx, zap.Int64("localOrderID", orderID))

	resp, err := o.paymentAPI.CreateOrder(ctx, params)
	if err != nil {
		o.logger.WarnCtx(ctx, "local order left tentative", zap.Error(err))
		return tegroprotocol.Response{}, fmt.Errorf("creating remote order failed: %w", err)
	}

	remoteID := o.remoteOrderID(ctx, resp)
	err = o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		return o.orderRepository.UpdateOrderStatusAndRemoteID(ctx, orderID, data.PendingStatus, remoteID)
	})
	if err != nil {
		o.logger.ErrorCtx(
			ctx,
			"local order diverged from remote order",
			zap.Any("remoteOrderID", remoteID),
			zap.Error(err),
		)
		return resp, fmt.Errorf("%w: %w", ErrOrderStateDiverged, err)
	}
	return resp, nil
}

func (o *Orders) remoteOrderID(ctx context.Context, resp tegroprotocol.Response) *int64 {
	var created tegroprotocol.CreatedOrder
	if err := resp.DecodeData(&created); err != nil {
		if !errors.Is(err, tegroprotocol.ErrNoData) {
			o.logger.WarnCtx(ctx, "unexpected createOrder data", zap.Error(err))
		}
		return nil
	}
	if created.ID == "" {
		return nil
	}
	id, err := apiclient.ToInt64(created.ID)
	if err != nil || id == 0 {
		o.logger.WarnCtx(ctx, "unexpected remote order id", zap.String("id", created.ID.String()))
		return nil
	}
	return &id
}

// GetOrder returns the local order of the configured shop by the
// merchant's reference.
func (o *Orders) GetOrder(ctx context.Context, reference string) (clientprotocol.Order, error) {
	order, err := o.orderRepository.FindOrderByShopAndReference(ctx, o.shopID, reference)
	if err != nil {
		if errors.Is(err, data.ErrOrderNotFound) || errors.Is(err, data.ErrAmbiguousOrder) {
			return clientprotocol.Order{}, ErrOrderNotFound
		}
		return clientprotocol.Order{}, fmt.Errorf("getting order failed: %w", err)
	}
	return convert(order), nil
}

func convert(order data.Order) clientprotocol.Order {
	res := clientprotocol.Order{
		Reference:       order.Reference,
		ShopID:          order.ShopID,
		RemoteID:        order.RemoteID,
		Status:          int(order.Status),
		Currency:        order.Currency,
		CurrencyID:      order.CurrencyID,
		PaymentSystemID: order.PaymentSystemID,
		TestOrder:       order.TestOrder,
		CreatedAt:       order.CreatedAt,
		PaidAt:          order.PaidAt,
	}
	if order.Amount.Valid {
		res.Amount = &order.Amount.Decimal
	}
	if order.Fee.Valid {
		res.Fee = &order.Fee.Decimal
	}
	return res
}

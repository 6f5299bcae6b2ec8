package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

// StatusUpdate is the part of a payment status notification that is applied
// locally. OrderID is the identifier assigned by the payment service.
type StatusUpdate struct {
	ShopID  string `validate:"required"`
	OrderID *int64 `validate:"required"`
	Status  *int   `validate:"required"`
}

type PaymentStatus struct {
	transactionManager TransactionManager
	orderRepository    OrderRepository
	validate           *validator.Validate
	logger             *logging.ZapLogger
}

func NewPaymentStatus(
	transactionManager TransactionManager,
	orderRepository OrderRepository,
	logger *logging.ZapLogger,
) *PaymentStatus {
	return &PaymentStatus{
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
		validate:           validator.New(),
		logger:             logger,
	}
}

// ApplyStatusUpdate overwrites the status of the single order matching
// shop_id and order_id of payload. Other payload members are ignored.
func (p *PaymentStatus) ApplyStatusUpdate(ctx context.Context, payload map[string]any) error {
	update, err := p.parseStatusUpdate(payload)
	if err != nil {
		p.logger.InfoCtx(ctx, "rejected status update", zap.Error(err))
		return ErrInvalidPayload
	}

	ctx = logging.WithContextFields(
		ctx,
		zap.String("shopID", update.ShopID),
		zap.Int64("remoteOrderID", *update.OrderID),
	)
	return p.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		order, err := p.orderRepository.FindOrderByShopAndRemoteID(ctx, update.ShopID, *update.OrderID)
		if err != nil {
			if errors.Is(err, data.ErrOrderNotFound) || errors.Is(err, data.ErrAmbiguousOrder) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("finding order failed: %w", err)
		}
		status := data.Status(*update.Status)
		if err := p.orderRepository.UpdateOrderStatus(ctx, order.ID, status); err != nil {
			return fmt.Errorf("updating order status failed: %w", err)
		}
		p.logger.InfoCtx(
			ctx,
			"order status updated",
			zap.Int("from", int(order.Status)),
			zap.Int("to", int(status)),
		)
		return nil
	})
}

func (p *PaymentStatus) parseStatusUpdate(payload map[string]any) (StatusUpdate, error) {
	var update StatusUpdate
	if v, ok := present(payload, "shop_id"); ok {
		shopID, err := apiclient.ToString(v)
		if err != nil {
			return StatusUpdate{}, fmt.Errorf("shop_id: %w", err)
		}
		update.ShopID = shopID
	}
	if v, ok := present(payload, "order_id"); ok {
		orderID, err := apiclient.ToInt64(v)
		if err != nil {
			return StatusUpdate{}, fmt.Errorf("order_id: %w", err)
		}
		update.OrderID = &orderID
	}
	if v, ok := present(payload, "status"); ok {
		status, err := apiclient.ToInt64(v)
		if err != nil {
			return StatusUpdate{}, fmt.Errorf("status: %w", err)
		}
		s := int(status)
		update.Status = &s
	}
	if err := p.validate.Struct(update); err != nil {
		return StatusUpdate{}, err //nolint:wrapcheck // unnecessary
	}
	return update, nil
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/service"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

type PaymentStatusService interface {
	ApplyStatusUpdate(ctx context.Context, payload map[string]any) error
}

// PaymentStatusHandler receives payment status notifications sent by the
// payment service.
type PaymentStatusHandler struct {
	service PaymentStatusService
	logger  *logging.ZapLogger
}

func NewPaymentStatusHandler(service PaymentStatusService, logger *logging.ZapLogger) *PaymentStatusHandler {
	return &PaymentStatusHandler{
		service: service,
		logger:  logger,
	}
}

func (h *PaymentStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer closeBody(ctx, r.Body, h.logger)

	if r.Method != http.MethodPost {
		h.reply(ctx, w, http.StatusBadRequest, "Invalid request: method must be POST")
		return
	}

	payload, err := decodeJSON[map[string]any](r.Body)
	if err != nil || payload == nil {
		if err == nil {
			err = errors.New("payload is not an object")
		}
		h.logger.InfoCtx(ctx, "error decoding payment status", zap.Error(err))
		h.reply(ctx, w, http.StatusBadRequest, fmt.Sprintf("Invalid request json: %v", err))
		return
	}

	err = h.service.ApplyStatusUpdate(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			h.reply(ctx, w, http.StatusBadRequest, "Invalid request: shop_id, order_id, status are expected")
		case errors.Is(err, service.ErrOrderNotFound):
			h.reply(ctx, w, http.StatusNotFound, "order not found")
		default:
			h.logger.ErrorCtx(ctx, "payment status handler error", zap.Error(err))
			h.reply(ctx, w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeResponseJSON(ctx, w, http.StatusOK, tegroprotocol.CallbackReply{Type: tegroprotocol.Success}, h.logger)
}

func (h *PaymentStatusHandler) reply(ctx context.Context, w http.ResponseWriter, status int, desc string) {
	writeResponseJSON(ctx, w, status, tegroprotocol.CallbackReply{Type: tegroprotocol.Error, Desc: desc}, h.logger)
}

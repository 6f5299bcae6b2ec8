package handlers

import (
	"context"
	"errors"
	"net/http"

	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/service"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

type OrderCreatingService interface {
	CreateOrder(ctx context.Context, params apiclient.Params) (tegroprotocol.Response, error)
}

// OrderCreatingHandler passes the request object to the payment service as
// createOrder parameters and answers with the payment service response.
type OrderCreatingHandler struct {
	service OrderCreatingService
	logger  *logging.ZapLogger
}

func NewOrderCreatingHandler(service OrderCreatingService, logger *logging.ZapLogger) *OrderCreatingHandler {
	return &OrderCreatingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderCreatingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer closeBody(ctx, r.Body, h.logger)

	params, err := decodeJSON[map[string]any](r.Body)
	if err != nil || params == nil {
		h.logger.DebugCtx(ctx, "error decoding order params", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateOrder(ctx, params)
	if err != nil {
		var (
			statusErr  *apiclient.HTTPStatusError
			retriesErr *apiclient.RetriesExceededError
		)
		switch {
		case errors.Is(err, service.ErrOrderStateDiverged):
			// The remote order exists, so the caller still gets its payment URL.
		case errors.Is(err, service.ErrInvalidOrderParams):
			h.logger.DebugCtx(ctx, "invalid order params", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		case errors.As(err, &statusErr), errors.As(err, &retriesErr):
			h.logger.WarnCtx(ctx, "payment service rejected order", zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		default:
			h.logger.ErrorCtx(ctx, "order creating handler error", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(resp.Raw); err != nil {
		h.logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go-tegro/internal/common/clientprotocol"
	"go-tegro/internal/tegro/service"
	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

// ReferenceURLParam is the route parameter holding the merchant's order reference.
const ReferenceURLParam = "reference"

type OrderGettingService interface {
	GetOrder(ctx context.Context, reference string) (clientprotocol.Order, error)
}

type OrderGettingHandler struct {
	service OrderGettingService
	logger  *logging.ZapLogger
}

func NewOrderGettingHandler(service OrderGettingService, logger *logging.ZapLogger) *OrderGettingHandler {
	return &OrderGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reference := chi.URLParam(r, ReferenceURLParam)
	if reference == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.GetOrder(ctx, reference)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorCtx(ctx, "Error getting order", zap.String("reference", reference), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeResponseJSON(ctx, w, http.StatusOK, order, h.logger)
}

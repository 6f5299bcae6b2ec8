package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go-tegro/pkg/logging"
	"go.uber.org/zap"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

// decodeJSON keeps numbers as json.Number so that large identifiers and
// amounts are not rounded through float64.
func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	err := decoder.Decode(&out)
	return out, err
}

func writeResponseJSON(ctx context.Context, w http.ResponseWriter, status int, item any, logger *logging.ZapLogger) {
	res, err := json.Marshal(item)
	if err != nil {
		logger.ErrorCtx(ctx, "error marshalling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(res); err != nil {
		logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

package tegro

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go-tegro/internal/common/clientprotocol"
	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/service"
	"go-tegro/pkg/logging"
)

type stubPaymentStatus struct{}

func (stubPaymentStatus) ApplyStatusUpdate(_ context.Context, payload map[string]any) error {
	if payload["shop_id"] == nil {
		return service.ErrInvalidPayload
	}
	return nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(_ context.Context, _ apiclient.Params) (tegroprotocol.Response, error) {
	return tegroprotocol.Response{Raw: []byte(`{"type":"success","desc":""}`)}, nil
}

func (stubOrders) GetOrder(_ context.Context, reference string) (clientprotocol.Order, error) {
	if reference == "A1" {
		return clientprotocol.Order{Reference: "A1"}, nil
	}
	return clientprotocol.Order{}, service.ErrOrderNotFound
}

func TestRoutes(t *testing.T) {
	mux := createMux(stubPaymentStatus{}, stubOrders{}, stubOrders{}, logging.NewNop())

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/payment_status/", `{"shop_id":"S1","order_id":1,"status":1}`, http.StatusOK},
		{http.MethodPost, "/payment_status/", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/payment_status/", ``, http.StatusBadRequest},
		{http.MethodPut, "/payment_status/", ``, http.StatusBadRequest},
		{http.MethodGet, "/api/orders/A1", ``, http.StatusOK},
		{http.MethodGet, "/api/orders/A2", ``, http.StatusNotFound},
		{http.MethodPost, "/api/orders/A1", ``, http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/orders/", `{"order_id":"A1"}`, http.StatusOK},
		{http.MethodGet, "/unknown", ``, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

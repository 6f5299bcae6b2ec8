package service_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/internal/tegro/apiclient"
	"go-tegro/internal/tegro/data"
	"go-tegro/internal/tegro/service"
	"go-tegro/internal/tegro/service/mocks"
	"go-tegro/pkg/logging"
	"go.uber.org/zap/zaptest"
)

type ordersFixture struct {
	tm   *mocks.MockTransactionManager
	repo *mocks.MockOrderRepository
	api  *mocks.MockPaymentAPI
}

func newOrdersFixture(t *testing.T) ordersFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := ordersFixture{
		tm:   mocks.NewMockTransactionManager(ctrl),
		repo: mocks.NewMockOrderRepository(ctrl),
		api:  mocks.NewMockPaymentAPI(ctrl),
	}
	return f
}

func (f ordersFixture) expectTransactions(times int) {
	f.tm.EXPECT().
		DoWithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		Times(times)
}

func (f ordersFixture) service(t *testing.T, api service.PaymentAPI) *service.Orders {
	t.Helper()
	return service.NewOrders(
		service.Config{ShopID: "S1"},
		f.tm,
		f.repo,
		api,
		logging.Wrap(zaptest.NewLogger(t)),
	)
}

func TestCreateOrderAgainstRemoteMock(t *testing.T) {
	const answer = `{"type":"success","desc":"","data":{"id":1232,"url":"https://pay/1232"}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(answer))
	}))
	defer server.Close()

	client := apiclient.New(apiclient.Config{
		BaseURL:    server.URL,
		ShopID:     "S1",
		SecretKey:  "secret",
		Timeout:    2 * time.Second,
		MaxRetries: 0,
	}, logging.Wrap(zaptest.NewLogger(t)))

	f := newOrdersFixture(t)
	f.expectTransactions(2)

	var stored data.Order
	gomock.InOrder(
		f.repo.EXPECT().
			InsertOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *data.Order) (int64, error) {
				stored = *order
				return 7, nil
			}),
		f.repo.EXPECT().
			UpdateOrderStatusAndRemoteID(gomock.Any(), int64(7), data.PendingStatus, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, status data.Status, remoteID *int64) error {
				stored.Status = status
				stored.RemoteID = remoteID
				return nil
			}),
	)

	resp, err := f.service(t, client).CreateOrder(context.Background(), apiclient.Params{
		"currency":       "RUB",
		"amount":         "64.18000000",
		"order_id":       "A1",
		"payment_system": 10,
	})
	require.NoError(t, err)

	assert.Equal(t, answer, string(resp.Raw))
	assert.Equal(t, tegroprotocol.Success, resp.Type)

	assert.Equal(t, "S1", stored.ShopID)
	require.NotNil(t, stored.Currency)
	assert.Equal(t, "RUB", *stored.Currency)
	require.True(t, stored.Amount.Valid)
	assert.True(t, decimal.RequireFromString("64.18").Equal(stored.Amount.Decimal))
	assert.Equal(t, "A1", stored.Reference)
	require.NotNil(t, stored.PaymentSystemID)
	assert.Equal(t, 10, *stored.PaymentSystemID)
	assert.Equal(t, data.PendingStatus, stored.Status)
	require.NotNil(t, stored.RemoteID)
	assert.Equal(t, int64(1232), *stored.RemoteID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreateOrderStoresFieldsAndReceipt(t *testing.T) {
	f := newOrdersFixture(t)
	f.expectTransactions(2)

	params := apiclient.Params{
		"order_id": 15,
		"amount":   "0.00000001",
		"fields":   map[string]any{"phone": "+7000", "email": "a@b.c"},
		"receipt": map[string]any{
			"items": []any{
				map[string]any{"name": "Tea", "count": 2, "price": "0.00000001"},
			},
		},
	}

	var (
		fields []data.OrderField
		items  []data.OrderReceiptItem
	)
	f.repo.EXPECT().
		InsertOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *data.Order) (int64, error) {
			assert.Equal(t, "15", order.Reference)
			assert.Equal(t, "0.00000001", order.Amount.Decimal.String())
			assert.Equal(t, data.UnknownStatus, order.Status)
			return 3, nil
		})
	f.repo.EXPECT().
		InsertOrderField(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, field data.OrderField) error {
			fields = append(fields, field)
			return nil
		}).
		Times(2)
	f.repo.EXPECT().
		InsertOrderReceiptItem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item data.OrderReceiptItem) error {
			items = append(items, item)
			return nil
		})
	f.api.EXPECT().
		CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got apiclient.Params) (tegroprotocol.Response, error) {
			assert.Equal(t, params, got)
			return tegroprotocol.Response{Type: tegroprotocol.Success}, nil
		})
	f.repo.EXPECT().
		UpdateOrderStatusAndRemoteID(gomock.Any(), int64(3), data.PendingStatus, (*int64)(nil)).
		Return(nil)

	_, err := f.service(t, f.api).CreateOrder(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []data.OrderField{
		{OrderID: 3, Name: "email", Value: "a@b.c"},
		{OrderID: 3, Name: "phone", Value: "+7000"},
	}, fields)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].OrderID)
	assert.Equal(t, "Tea", items[0].Name)
	assert.Equal(t, "2", items[0].Count.String())
	assert.Equal(t, "0.00000001", items[0].Price.String())
}

func TestCreateOrderLeavesTentativeOrderOnRemoteFailure(t *testing.T) {
	f := newOrdersFixture(t)
	f.expectTransactions(1)

	remoteErr := errors.New("remote unavailable")
	f.repo.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.api.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(tegroprotocol.Response{}, remoteErr)

	_, err := f.service(t, f.api).CreateOrder(context.Background(), apiclient.Params{"order_id": "A1"})
	require.ErrorIs(t, err, remoteErr)
}

func TestCreateOrderInsertFailureSkipsRemoteCall(t *testing.T) {
	f := newOrdersFixture(t)
	f.expectTransactions(1)

	f.repo.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.repo.EXPECT().InsertOrderField(gomock.Any(), gomock.Any()).Return(data.ErrUniqueConstraintViolation)

	_, err := f.service(t, f.api).CreateOrder(context.Background(), apiclient.Params{
		"order_id": "A1",
		"fields":   map[string]string{"email": "a@b.c"},
	})
	require.ErrorIs(t, err, data.ErrUniqueConstraintViolation)
}

func TestCreateOrderRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params apiclient.Params
	}{
		{name: "stored amount", params: apiclient.Params{"order_id": "A1", "amount": "sixty"}},
		{name: "request-only page", params: apiclient.Params{"order_id": "A1", "page": "first"}},
		{name: "request-only nonce", params: apiclient.Params{"order_id": "A1", "nonce": 1.5}},
		{name: "request-only email", params: apiclient.Params{"order_id": "A1", "email": []any{"a@b.c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: any transaction, insert or remote call fails the test.
			f := newOrdersFixture(t)

			_, err := f.service(t, f.api).CreateOrder(context.Background(), tt.params)
			require.ErrorIs(t, err, service.ErrInvalidOrderParams)
			require.ErrorIs(t, err, apiclient.ErrInvalidParam)
		})
	}
}

func TestCreateOrderReportsDivergence(t *testing.T) {
	f := newOrdersFixture(t)
	f.expectTransactions(2)

	resp := tegroprotocol.Response{
		Type: tegroprotocol.Success,
		Data: []byte(`{"id":"99","url":"u"}`),
		Raw:  []byte(`{"type":"success"}`),
	}
	remoteID := int64(99)
	f.repo.EXPECT().InsertOrder(gomock.Any(), gomock.Any()).Return(int64(5), nil)
	f.api.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(resp, nil)
	f.repo.EXPECT().
		UpdateOrderStatusAndRemoteID(gomock.Any(), int64(5), data.PendingStatus, &remoteID).
		Return(errors.New("connection reset"))

	got, err := f.service(t, f.api).CreateOrder(context.Background(), apiclient.Params{"order_id": "A1"})
	require.ErrorIs(t, err, service.ErrOrderStateDiverged)
	assert.Equal(t, resp.Raw, got.Raw)
}

func TestGetOrder(t *testing.T) {
	f := newOrdersFixture(t)
	remoteID := int64(1232)
	f.repo.EXPECT().
		FindOrderByShopAndReference(gomock.Any(), "S1", "A1").
		Return(data.Order{
			ShopID:    "S1",
			Reference: "A1",
			RemoteID:  &remoteID,
			Amount:    decimal.NewNullDecimal(decimal.RequireFromString("64.18")),
			Status:    data.PendingStatus,
		}, nil)
	f.repo.EXPECT().
		FindOrderByShopAndReference(gomock.Any(), "S1", "A2").
		Return(data.Order{}, data.ErrAmbiguousOrder)

	orders := f.service(t, f.api)

	order, err := orders.GetOrder(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", order.Reference)
	assert.Equal(t, &remoteID, order.RemoteID)
	require.NotNil(t, order.Amount)
	assert.Equal(t, "64.18", order.Amount.String())
	assert.Nil(t, order.Fee)

	_, err = orders.GetOrder(context.Background(), "A2")
	require.ErrorIs(t, err, service.ErrOrderNotFound)
}

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/pkg/logging"
	"go-tegro/pkg/timeutils"
	"go.uber.org/zap/zaptest"
)

type recordedRequest struct {
	path    string
	body    []byte
	headers http.Header
}

type remoteMock struct {
	mux      sync.Mutex
	requests []recordedRequest
	respond  func(attempt int, w http.ResponseWriter)
}

func (m *remoteMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	m.mux.Lock()
	m.requests = append(m.requests, recordedRequest{
		path:    r.URL.Path,
		body:    body,
		headers: r.Header.Clone(),
	})
	attempt := len(m.requests)
	m.mux.Unlock()
	m.respond(attempt, w)
}

func (m *remoteMock) attempts() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.requests)
}

func newTestClient(t *testing.T, baseURL string, maxRetries int) *Client {
	t.Helper()
	return New(Config{
		BaseURL:     baseURL,
		ShopID:      "S1",
		SecretKey:   "secret",
		Timeout:     2 * time.Second,
		MaxRetries:  maxRetries,
		RetryDelay:  time.Millisecond,
		LogRequests: true,
	}, logging.Wrap(zaptest.NewLogger(t)))
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const successBody = `{"type":"success","desc":"","data":{"id":1232,"url":"https://pay/1232"}}`

func TestClient_Send_Success(t *testing.T) {
	remote := &remoteMock{respond: func(_ int, w http.ResponseWriter) {
		writeBody(w, http.StatusOK, successBody)
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/", 3)
	resp, err := client.CreateOrder(context.Background(), Params{
		"currency":       "RUB",
		"amount":         "64.18000000",
		"order_id":       "A1",
		"payment_system": 10,
	})
	require.NoError(t, err)

	assert.Equal(t, tegroprotocol.Success, resp.Type)
	assert.JSONEq(t, successBody, string(resp.Raw))

	var created tegroprotocol.CreatedOrder
	require.NoError(t, resp.DecodeData(&created))
	assert.Equal(t, "1232", created.ID.String())

	require.Len(t, remote.requests, 1)
	req := remote.requests[0]
	assert.Equal(t, "/api/createOrder/", req.path)
	assert.Equal(t, "application/json", req.headers.Get("Content-Type"))
	assert.Equal(t, "application/json", req.headers.Get("Accept"))

	signature, err := Sign("secret", req.body)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+signature, req.headers.Get("Authorization"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.body, &sent))
	assert.Equal(t, "S1", sent["shop_id"])
	assert.Equal(t, "A1", sent["order_id"])
	assert.Contains(t, sent, "nonce")
}

func TestClient_Send_NetworkErrorsExhaustRetries(t *testing.T) {
	remote := &remoteMock{respond: func(_ int, w http.ResponseWriter) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("hijacking not supported")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(err)
		}
		_ = conn.Close()
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	_, err := client.Balance(context.Background(), Params{})

	var exceeded *RetriesExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.ErrorIs(t, err, timeutils.ErrAllAttemptsFailed)
	assert.Contains(t, exceeded.Request, "POST balance/")
	assert.False(t, exceeded.Time.IsZero())

	var transient *TransientError
	require.ErrorAs(t, err, &transient)
	assert.Equal(t, ReasonNetwork, transient.Reason)

	assert.Equal(t, 4, remote.attempts())
}

func TestClient_Send_StatusErrorIsNotRetried(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			message: "access to the requested resource is forbidden",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			message: "HTTP status code is not 200",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			remote := &remoteMock{respond: func(_ int, w http.ResponseWriter) {
				writeBody(w, test.status, `{"type":"error","desc":"nope"}`)
			}}
			server := httptest.NewServer(remote)
			defer server.Close()

			client := newTestClient(t, server.URL, 3)
			_, err := client.Shops(context.Background(), nil)

			var statusErr *HTTPStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, test.status, statusErr.Code)
			assert.Equal(t, test.message, statusErr.Message)
			assert.JSONEq(t, `{"type":"error","desc":"nope"}`, string(statusErr.Body))
			assert.Equal(t, 1, remote.attempts())
		})
	}
}

func TestClient_Send_RetriesSameBody(t *testing.T) {
	remote := &remoteMock{respond: func(attempt int, w http.ResponseWriter) {
		switch attempt {
		case 1:
			writeBody(w, http.StatusOK, `not json`)
		case 2:
			writeBody(w, http.StatusOK, `{"type":"error","desc":"Order not found"}`)
		default:
			writeBody(w, http.StatusOK, `{"type":"success","desc":"","data":{"id":1232}}`)
		}
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	resp, err := client.CheckOrder(context.Background(), Params{"order_id": 1232})
	require.NoError(t, err)
	assert.Equal(t, tegroprotocol.Success, resp.Type)

	require.Len(t, remote.requests, 3)
	for _, req := range remote.requests[1:] {
		assert.Equal(t, string(remote.requests[0].body), string(req.body))
		assert.Equal(t, remote.requests[0].headers.Get("Authorization"), req.headers.Get("Authorization"))
	}
}

func TestClient_Send_LogicalFailuresShareBudget(t *testing.T) {
	remote := &remoteMock{respond: func(attempt int, w http.ResponseWriter) {
		if attempt%2 == 0 {
			writeBody(w, http.StatusOK, `{"desc":"no type"`)
			return
		}
		writeBody(w, http.StatusOK, `{"type":"error","desc":"Invalid signature"}`)
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := newTestClient(t, server.URL, 2)
	_, err := client.ListOrders(context.Background(), Params{"page": 1})

	var exceeded *RetriesExceededError
	require.ErrorAs(t, err, &exceeded)
	var transient *TransientError
	require.ErrorAs(t, err, &transient)
	assert.Equal(t, ReasonRemote, transient.Reason)
	assert.Equal(t, "Invalid signature", transient.Desc)
	assert.Equal(t, 3, remote.attempts())
}

func TestClient_Send_MissingCredential(t *testing.T) {
	remote := &remoteMock{respond: func(_ int, w http.ResponseWriter) {
		writeBody(w, http.StatusOK, successBody)
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := New(Config{BaseURL: server.URL, ShopID: "S1"}, logging.NewNop())
	_, err := client.Balance(context.Background(), nil)

	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Equal(t, 0, remote.attempts())
}

func TestClient_Send_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := &remoteMock{respond: func(_ int, w http.ResponseWriter) {
		cancel()
		writeBody(w, http.StatusOK, `{"type":"error","desc":"busy"}`)
	}}
	server := httptest.NewServer(remote)
	defer server.Close()

	client := New(Config{
		BaseURL:    server.URL,
		ShopID:     "S1",
		SecretKey:  "secret",
		MaxRetries: 3,
		RetryDelay: time.Hour,
	}, logging.NewNop())
	_, err := client.Balance(ctx, nil)

	assert.True(t, errors.Is(err, context.Canceled))
	var exceeded *RetriesExceededError
	assert.False(t, errors.As(err, &exceeded))
	assert.Equal(t, 1, remote.attempts())
}

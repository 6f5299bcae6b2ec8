package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go-tegro/internal/common/tegroprotocol"
	"go-tegro/pkg/logging"
	"go-tegro/pkg/timeutils"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL    = "https://tegro.money/api/"
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 3 * time.Second
)

type Config struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of re-sends after the first attempt.
	MaxRetries  int
	RetryDelay  time.Duration
	LogRequests bool
}

// Client is safe for concurrent use; one instance is shared by the process.
type Client struct {
	cfg     Config
	http    *resty.Client
	builder *Builder
	logger  *logging.ZapLogger
}

func New(cfg Config, logger *logging.ZapLogger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(restyLogger{logger: logger}).
		SetHeaders(map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		})

	logger.DebugCtx(context.Background(), "Initializing HTTP session", zap.String("baseURL", cfg.BaseURL))

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		builder: NewBuilder(cfg.ShopID),
		logger:  logger,
	}
}

// Send normalizes and signs params once, then posts the same body up to
// MaxRetries+1 times. Network, decoding and non-success API answers are
// retried after RetryDelay; a non-200 status fails immediately.
func (c *Client) Send(ctx context.Context, operation string, params Params) (tegroprotocol.Response, error) {
	body, err := c.builder.Build(params)
	if err != nil {
		return tegroprotocol.Response{}, fmt.Errorf("failed to prepare %s request: %w", operation, err)
	}
	signature, err := Sign(c.cfg.SecretKey, body)
	if err != nil {
		return tegroprotocol.Response{}, err
	}

	path := operation + "/"
	ctx = logging.WithContextFields(ctx, zap.String("operation", operation))

	res, err := timeutils.Retry(
		ctx,
		timeutils.FixedDelays(c.cfg.MaxRetries+1, c.cfg.RetryDelay),
		func(ctx context.Context) (tegroprotocol.Response, error) {
			return c.submit(ctx, path, body, signature)
		},
		func(attempt int, _ tegroprotocol.Response, err error) bool {
			var transient *TransientError
			if !errors.As(err, &transient) {
				return false
			}
			c.logger.ErrorCtx(
				ctx,
				"Request attempt failed",
				zap.Error(err),
				zap.Int("retriesRemaining", c.cfg.MaxRetries+1-attempt),
			)
			return true
		},
	)
	if err != nil {
		if errors.Is(err, timeutils.ErrAllAttemptsFailed) {
			return tegroprotocol.Response{}, &RetriesExceededError{
				Request: fmt.Sprintf("POST %s: %s", path, body),
				Time:    time.Now().UTC(),
				Err:     err,
			}
		}
		return tegroprotocol.Response{}, err
	}
	return res, nil
}

func (c *Client) submit(ctx context.Context, path string, body []byte, signature string) (tegroprotocol.Response, error) {
	if c.cfg.LogRequests {
		c.logger.DebugCtx(ctx, "Request", zap.String("path", path), zap.ByteString("body", body))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(signature).
		SetBody(body).
		Post(path)
	if err != nil {
		if ctx.Err() != nil {
			return tegroprotocol.Response{}, fmt.Errorf("request canceled: %w", ctx.Err())
		}
		return tegroprotocol.Response{}, &TransientError{Reason: ReasonNetwork, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		statusErr := newHTTPStatusError(resp.StatusCode(), resp.Body())
		c.logger.ErrorCtx(
			ctx,
			statusErr.Message,
			zap.Int("statusCode", statusErr.Code),
			zap.ByteString("response", statusErr.Body),
		)
		return tegroprotocol.Response{}, statusErr
	}

	var parsed tegroprotocol.Response
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return tegroprotocol.Response{}, &TransientError{Reason: ReasonDecode, Err: err}
	}
	if parsed.Type != tegroprotocol.Success {
		return tegroprotocol.Response{}, &TransientError{
			Reason: ReasonRemote,
			Type:   string(parsed.Type),
			Desc:   parsed.Desc,
		}
	}

	if c.cfg.LogRequests {
		c.logger.DebugCtx(
			ctx,
			"Response",
			zap.Duration("elapsed", resp.Time()),
			zap.ByteString("body", resp.Body()),
		)
	}
	parsed.Raw = resp.Body()
	return parsed, nil
}

type restyLogger struct {
	logger *logging.ZapLogger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.ErrorCtx(context.Background(), fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.WarnCtx(context.Background(), fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.DebugCtx(context.Background(), fmt.Sprintf(format, v...))
}

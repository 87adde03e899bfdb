package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/config"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
)

// Options connection settings of a sibling service
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// OptionsFor builds Options for baseURL using the shared timeout and retry settings
func OptionsFor(baseURL string, cfg *config.ServicesConfig) Options {
	return Options{
		BaseURL:    baseURL,
		Timeout:    cfg.Timeout,
		RetryCount: cfg.RetryCount,
	}
}

// RemoteError a sibling answered with a non-success status or envelope code.
// errors.Is matches it against the pkg/errors sentinels.
type RemoteError struct {
	Service string
	Status  int
	Code    int
	Message string
	kind    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: status %d code %d: %s", e.Service, e.Status, e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.kind
}

// Client calls one sibling service and unwraps the {code,message,data} envelope.
// Network errors and 5xx answers are retried with backoff.
type Client struct {
	name   string
	http   *resty.Client
	logger *zap.Logger
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// New creates a Client for the service called name
func New(name string, opts Options, logger *zap.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	wait := opts.RetryWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(4*wait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{name: name, http: rc, logger: logger}
}

// Get issues GET path and decodes data into out
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues POST path with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues PUT path with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if token := TokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if rid := RequestIDFrom(ctx); rid != "" {
		req.SetHeader("X-Request-ID", rid)
	}
	// siblings rate-limit by caller address
	if ip := ClientIPFrom(ctx); ip != "" {
		req.SetHeader("X-Forwarded-For", ip)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("sibling call failed",
			zap.String("service", c.name),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s %s: %w", c.name, method, path, apperrors.ErrUnavailable)
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if resp.StatusCode() >= http.StatusBadRequest {
		rerr := &RemoteError{
			Service: c.name,
			Status:  resp.StatusCode(),
			Code:    env.Code,
			Message: env.Message,
			kind:    classify(resp.StatusCode()),
		}
		if decodeErr != nil || rerr.Message == "" {
			rerr.Message = http.StatusText(resp.StatusCode())
		}
		if rerr.Status >= http.StatusInternalServerError {
			c.logger.Warn("sibling returned server error",
				zap.String("service", c.name),
				zap.String("path", path),
				zap.Int("status", rerr.Status),
			)
		}
		return rerr
	}

	if decodeErr != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", c.name, path, decodeErr)
	}
	if env.Code != 0 {
		return &RemoteError{
			Service: c.name,
			Status:  resp.StatusCode(),
			Code:    env.Code,
			Message: env.Message,
			kind:    apperrors.ErrBadRequest,
		}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%s %s: decode data: %w", c.name, path, err)
	}
	return nil
}

func classify(status int) error {
	switch {
	case status == http.StatusNotFound:
		return apperrors.ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status >= http.StatusInternalServerError:
		return apperrors.ErrUnavailable
	default:
		return apperrors.ErrBadRequest
	}
}

// AsRemote extracts a RemoteError from err
func AsRemote(err error) (*RemoteError, bool) {
	var rerr *RemoteError
	if errors.As(err, &rerr) {
		return rerr, true
	}
	return nil, false
}

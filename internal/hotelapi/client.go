package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type contextKey string

const tokenKey contextKey = "hotelapi.token"

// WithToken attaches the caller's bearer token to the context. Every request
// the client makes for that context carries it through to the collaborator.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext extracts the bearer token, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// Client is the typed HTTP client for the hotel REST API. The transport is
// untyped JSON; every response is validated and coerced at this boundary so
// the core never has to trust payload shapes.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	logger   *zap.Logger
}

// NewClient creates a collaborator client. Timeouts are the transport
// layer's job; a timed-out request surfaces as a TransportError, never as
// success.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(),
		logger:   logger,
	}
}

// apiEnvelope is the collaborator's error/message wrapper.
type apiEnvelope struct {
	Message string `json:"message"`
}

// get performs a GET request and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// putJSON performs a PUT request with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// postJSON performs a POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// A cancelled context is not a failure; let it pass through
		// unchanged so callers can ignore it.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &TransportError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.mapError(method, path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Err: fmt.Errorf("malformed response from %s %s: %w", method, path, err)}
	}
	return nil
}

// mapError translates a collaborator rejection into the portal error
// taxonomy: unauthenticated, conflict, validation, or transport.
func (c *Client) mapError(method, path string, status int, raw []byte) error {
	var env apiEnvelope
	_ = json.Unmarshal(raw, &env)

	c.logger.Debug("hotel API rejected request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("message", env.Message),
	)

	switch {
	case status == http.StatusUnauthorized || env.Message == "Unauthenticated.":
		return fmt.Errorf("%w: %s", ErrUnauthenticated, env.Message)
	case status == http.StatusConflict:
		return &ConflictError{Message: env.Message}
	case status >= 500:
		return &TransportError{Err: fmt.Errorf("server error %d", status)}
	default:
		return &RequestError{Status: status, Message: env.Message}
	}
}

// checkResponse runs boundary validation on a decoded payload.
func (c *Client) checkResponse(payload any, what string) error {
	if err := c.validate.Struct(payload); err != nil {
		return &TransportError{Err: fmt.Errorf("invalid %s payload: %w", what, err)}
	}
	return nil
}

// Package upstream is the JSON client for the remote booking platform. It
// translates the platform's {success, data, message} envelope into domain
// values and typed errors; everything above it treats the wire as opaque.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/konanyao/akwaba/internal/core/domain"
	"github.com/konanyao/akwaba/internal/pkg/metrics"
)

// Client talks to the booking platform API.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

// NewClient creates a Client rooted at baseURL (no trailing slash).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer("akwaba/upstream"),
	}
}

// envelope is the platform's uniform JSON response shape.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Token   string          `json:"token,omitempty"`
	User    *domain.User    `json:"user,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// doJSON performs one API call and decodes the envelope. A decoded
// {success:false} or a 4xx/5xx with a readable message becomes a
// *domain.APIError carrying the server's own words; anything else is a
// plain transport error.
func (c *Client) doJSON(ctx context.Context, op, method, path, token string, body any) (*envelope, error) {
	start := time.Now()
	env, err := c.roundTrip(ctx, op, method, path, token, body)
	metrics.ObserveUpstream(op, start, err)
	return env, err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path, token string, body any) (*envelope, error) {
	ctx, span := c.tracer.Start(ctx, "upstream."+op,
		trace.WithAttributes(attribute.String("http.method", method), attribute.String("http.path", path)))
	defer span.End()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &domain.APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadRequest
		}
		return nil, &domain.APIError{StatusCode: status, Message: env.Message}
	}
	return &env, nil
}

// doBinary performs one API call expected to return an opaque artifact.
func (c *Client) doBinary(ctx context.Context, op, path, token string) ([]byte, error) {
	start := time.Now()
	content, err := c.binaryRoundTrip(ctx, op, path, token)
	metrics.ObserveUpstream(op, start, err)
	return content, err
}

func (c *Client) binaryRoundTrip(ctx context.Context, op, path, token string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "upstream."+op)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env envelope
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return nil, &domain.APIError{StatusCode: resp.StatusCode, Message: env.Message}
		}
		return nil, &domain.APIError{StatusCode: resp.StatusCode}
	}

	return io.ReadAll(io.LimitReader(resp.Body, 16<<20))
}

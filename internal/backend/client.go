// Package backend is the HTTP client for the GoWear REST backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

const maxErrorBody = 4 << 10

// Observer receives one call per finished request.
type Observer func(op string, status int, elapsed time.Duration)

type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }
func WithObserver(o Observer) Option      { return func(c *Client) { c.observer = o } }

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request describes one backend call. Out, when set, receives the decoded
// JSON body. FailMsg is the public message used when the backend gives none.
type Request struct {
	Op      string
	Method  string
	Path    string
	Token   string
	Body    any
	Out     any
	FailMsg string
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) Do(ctx context.Context, r Request) error {
	start := time.Now()
	status, err := c.do(ctx, r)
	if c.observer != nil {
		c.observer(r.Op, status, time.Since(start))
	}
	return err
}

func (c *Client) do(ctx context.Context, r Request) (int, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return 0, fmt.Errorf("backend %s: encode body: %w", r.Op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.baseURL+r.Path, body)
	if err != nil {
		return 0, fmt.Errorf("backend %s: %w", r.Op, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, apperr.UnavailableErr(failMsg(r), fmt.Errorf("backend %s: %w", r.Op, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, statusError(r, resp.StatusCode, raw)
	}

	if r.Out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(r.Out); err != nil {
		return resp.StatusCode, apperr.UnavailableErr(failMsg(r), fmt.Errorf("backend %s: decode: %w", r.Op, err))
	}
	return resp.StatusCode, nil
}

func statusError(r Request, status int, raw []byte) error {
	msg := failMsg(r)
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		if eb.Message != "" {
			msg = eb.Message
		} else if eb.Error != "" {
			msg = eb.Error
		}
	}
	return &apperr.AppError{
		Kind:      apperr.KindForStatus(status),
		PublicMsg: msg,
		Err:       fmt.Errorf("backend %s %s: status %d: %s", r.Method, r.Path, status, bytes.TrimSpace(raw)),
	}
}

func failMsg(r Request) string {
	if r.FailMsg != "" {
		return r.FailMsg
	}
	return "The store service is unavailable right now."
}

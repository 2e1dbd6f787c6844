// Package api performs the bot's HTTP calls against the quest service. Every
// response is classified once at this boundary; failures never propagate past
// it as errors, only as tagged results.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Yanu403/sunkong/internal/logging"
	"github.com/Yanu403/sunkong/internal/session"
)

// Status classifies one API response.
type Status int

const (
	// StatusFailed covers transport errors and empty or undecodable
	// bodies. There is no payload to inspect.
	StatusFailed Status = iota
	// StatusServerError means the body carried an explicit error envelope
	// (statusCode 500 or 401). The payload is still surfaced.
	StatusServerError
	// StatusOK is any other parsed body, returned verbatim.
	StatusOK
)

// Result is the outcome of one call.
type Result struct {
	Status  Status
	Raw     json.RawMessage
	Code    int
	Message string
}

// Absent reports whether the call produced nothing usable.
func (r Result) Absent() bool { return r.Status == StatusFailed }

// OK reports whether the call produced a clean payload.
func (r Result) OK() bool { return r.Status == StatusOK }

type Client struct {
	base string
	http *http.Client
	log  *logging.Logger
}

// NewClient builds a client for one API base URL. The timeout bounds every
// individual request so a hung call cannot stall the pipeline forever.
func NewClient(baseURL string, timeout time.Duration, log *logging.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
		log:  log.With("module", "api"),
	}
}

func (c *Client) url(path string) string { return c.base + path }

// envelope probes the fields the service uses to report errors in-band.
// Unmarshal fails harmlessly on array bodies, leaving the zero value.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// Do executes one request and classifies the response.
func (c *Client) Do(ctx context.Context, sess *session.Session, req Request) Result {
	headers, err := BuildHeaders(req, sess)
	if err != nil {
		c.log.Error("building request failed", "url", req.URL, "err", err)
		return Result{Status: StatusFailed}
	}

	var body io.Reader
	if req.Method != http.MethodGet {
		payload := req.Body
		if payload == nil {
			payload = struct{}{}
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.log.Error("encoding request body failed", "url", req.URL, "err", err)
			return Result{Status: StatusFailed}
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		c.log.Error("building request failed", "url", req.URL, "err", err)
		return Result{Status: StatusFailed}
	}
	httpReq.Header = headers

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("api call failed", "url", req.URL, "err", err)
		return Result{Status: StatusFailed}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("reading response failed", "url", req.URL, "err", err)
		return Result{Status: StatusFailed}
	}
	if len(bytes.TrimSpace(raw)) == 0 || !json.Valid(raw) {
		c.log.Error("response was empty or not json", "url", req.URL)
		return Result{Status: StatusFailed}
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)
	if env.StatusCode == http.StatusInternalServerError || env.StatusCode == http.StatusUnauthorized {
		c.log.Error("server rejected request", "url", req.URL, "status", env.StatusCode, "message", env.Message)
		return Result{Status: StatusServerError, Raw: raw, Code: env.StatusCode, Message: env.Message}
	}
	return Result{Status: StatusOK, Raw: raw}
}

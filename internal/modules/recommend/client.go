package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client talks to the recommendation agent.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

func (c *Client) Recommend(ctx context.Context, req Request) (*Response, error) {
	resp, err := c.post(ctx, "/recommendations/destinations", req, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("recommend: decode response: %w", err)
	}
	return &out, nil
}

// Stream posts to the stream endpoint and hands every decoded frame to fn.
func (c *Client) Stream(ctx context.Context, req Request, fn func(Frame) error) error {
	resp, err := c.post(ctx, "/recommendations/destinations/stream", req, "text/event-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return ReadFrames(ctx, resp.Body, fn)
}

func (c *Client) post(ctx context.Context, path string, payload any, accept string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("recommend: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("recommend: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", accept)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("recommend: do request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("recommend: status %d: %s", resp.StatusCode, upstreamMessage(resp.Body))
	}
	return resp, nil
}

func upstreamMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 64<<10))
	var e struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(raw, &e) == nil {
		if e.Detail != "" {
			return e.Detail
		}
		if e.Error != "" {
			return e.Error
		}
	}
	if s := strings.TrimSpace(string(raw)); s != "" {
		return s
	}
	return "Backend API call failed"
}

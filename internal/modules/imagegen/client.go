package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client calls the image generation agent over HTTP.
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

type agentError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// Generate posts the request to <base>/generate.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("imagegen: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("imagegen: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("imagegen: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imagegen: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "Agent API call failed"
		var ae agentError
		if json.Unmarshal(raw, &ae) == nil {
			if ae.Detail != "" {
				msg = ae.Detail
			} else if ae.Error != "" {
				msg = ae.Error
			}
		}
		return nil, fmt.Errorf("imagegen: status %d: %s", resp.StatusCode, msg)
	}

	var out GenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("imagegen: unmarshal response: %w", err)
	}
	if out.Status == StatusError {
		msg := out.Error
		if msg == "" {
			msg = "Image generation failed"
		}
		return nil, fmt.Errorf("imagegen: %s", msg)
	}
	return &out, nil
}

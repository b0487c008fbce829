package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-videostudio-be/pkg/provider"
)

const ProviderName = "fal"

const (
	defaultQueueBaseURL = "https://queue.fal.run"
	defaultPollInterval = 2 * time.Second
)

// Client talks to the fal.ai queue API: submit a request, poll its
// status, then fetch the result payload. All generation models share
// this flow; only the input shape differs per model.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	baseURL      string
	pollInterval time.Duration
}

func NewClient(apiKey string) *Client {
	return &Client{
		// Video models regularly run for minutes on the provider side.
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		baseURL:      defaultQueueBaseURL,
		pollInterval: defaultPollInterval,
	}
}

// WithBaseURL overrides the queue endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

func (c *Client) WithPollInterval(d time.Duration) *Client {
	c.pollInterval = d
	return c
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type submitResponse struct {
	RequestId   string `json:"request_id"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

type statusResponse struct {
	Status string `json:"status"` // IN_QUEUE | IN_PROGRESS | COMPLETED
	Error  string `json:"error,omitempty"`
}

type apiError struct {
	Detail any    `json:"detail"`
	Error  string `json:"error"`
}

// errorMessage extracts the most useful text from a fal error body.
// detail may be a string or a list of validation objects.
func errorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		switch d := e.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case []any:
			if len(d) > 0 {
				if m, ok := d[0].(map[string]any); ok {
					if msg, ok := m["msg"].(string); ok {
						return msg
					}
				}
			}
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return string(body)
}

func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, *provider.Error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, provider.Unreachable(ProviderName, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	req.Header.Set("Authorization", "Key "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.Unreachable(ProviderName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewError(ProviderName, resp.StatusCode, errorMessage(respBody))
	}
	return respBody, nil
}

// Subscribe submits input to model's queue and blocks until the request
// completes or ctx expires. Returns the raw result payload plus the
// provider request id.
func (c *Client) Subscribe(ctx context.Context, model string, input any) (json.RawMessage, string, *provider.Error) {
	if c.apiKey == "" {
		return nil, "", &provider.Error{
			Kind:     provider.KindUnavailable,
			Provider: ProviderName,
			Message:  "FAL_KEY not configured",
		}
	}

	submitBody, perr := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s", c.baseURL, model), input)
	if perr != nil {
		return nil, "", perr
	}

	var submitted submitResponse
	if err := json.Unmarshal(submitBody, &submitted); err != nil {
		return nil, "", provider.Unreachable(ProviderName, err)
	}
	if submitted.RequestId == "" {
		return nil, "", provider.NewError(ProviderName, http.StatusBadGateway, "queue submit returned no request_id")
	}

	statusURL := submitted.StatusURL
	responseURL := submitted.ResponseURL
	if statusURL == "" {
		statusURL = fmt.Sprintf("%s/%s/requests/%s/status", c.baseURL, model, submitted.RequestId)
	}
	if responseURL == "" {
		responseURL = fmt.Sprintf("%s/%s/requests/%s", c.baseURL, model, submitted.RequestId)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, submitted.RequestId, provider.Unreachable(ProviderName, ctx.Err())
		case <-ticker.C:
		}

		statusBody, perr := c.do(ctx, http.MethodGet, statusURL, nil)
		if perr != nil {
			return nil, submitted.RequestId, perr
		}

		var status statusResponse
		if err := json.Unmarshal(statusBody, &status); err != nil {
			return nil, submitted.RequestId, provider.Unreachable(ProviderName, err)
		}

		switch status.Status {
		case "COMPLETED":
			resultBody, perr := c.do(ctx, http.MethodGet, responseURL, nil)
			if perr != nil {
				return nil, submitted.RequestId, perr
			}
			return resultBody, submitted.RequestId, nil
		case "IN_QUEUE", "IN_PROGRESS":
			// keep polling
		default:
			msg := status.Error
			if msg == "" {
				msg = fmt.Sprintf("request ended with status %s", status.Status)
			}
			return nil, submitted.RequestId, provider.NewError(ProviderName, http.StatusBadGateway, msg)
		}
	}
}

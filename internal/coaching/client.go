// Package coaching forwards subjective training feedback to the coaching
// service.
package coaching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SubjectiveParams is the feedback payload forwarded to the coaching service.
type SubjectiveParams struct {
	UserID                   string  `json:"userId"`
	SessionID                string  `json:"sessionId"`
	TimestampLocal           int64   `json:"timestampLocal"`
	PerceivedExertion        float64 `json:"perceivedExertion"`
	PerceivedRecovery        float64 `json:"perceivedRecovery"`
	PerceivedTrainingSuccess float64 `json:"perceivedTrainingSuccess"`
}

// Client posts subjective params to the coaching endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient builds a Client against the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendSubjectiveParams delivers one feedback payload. Non-2xx responses are
// reported as errors; nothing is retried.
func (c *Client) SendSubjectiveParams(ctx context.Context, params SubjectiveParams) error {
	body, err := json.Marshal(params)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("coaching request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("coaching request: unexpected status %d", resp.StatusCode)
	}
	return nil
}

package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client posts checkout payloads to the remote order endpoint. The
// endpoint only promises a success/failure indicator back.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, http: &http.Client{}}
}

type SubmitResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
}

func (c *Client) Submit(ctx context.Context, o Order) (SubmitResult, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return SubmitResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/orders", bytes.NewReader(b))
	if err != nil {
		return SubmitResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	var out SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return SubmitResult{}, fmt.Errorf("submit order: decode: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return SubmitResult{}, fmt.Errorf("submit order: status %d", resp.StatusCode)
	}
	return out, nil
}

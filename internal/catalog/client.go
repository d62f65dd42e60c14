package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RemoteError marks a product-service failure. The UI treats these as
// transient and retryable; the core never retries on its own.
type RemoteError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("product service: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("product service: %s: status %d", e.Op, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Client talks to the remote product service. It only assumes the four
// CRUD operations plus the detail/related lookups return parseable product
// records or a failure indicator; transport shape beyond that is the
// collaborator's contract.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string) *Client {
	return &Client{base: base, http: &http.Client{}}
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) GetAll(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, "list", http.MethodGet, "/api/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (Product, error) {
	var out Product
	err := c.do(ctx, "get", http.MethodGet, "/api/products/"+id, nil, &out)
	return out, err
}

// GetDetailed fetches the detail variant of a product record.
func (c *Client) GetDetailed(ctx context.Context, id string) (Product, error) {
	var out Product
	err := c.do(ctx, "detail", http.MethodGet, "/api/products/"+id+"/detail", nil, &out)
	return out, err
}

// GetRelated fetches products related to the given one.
func (c *Client) GetRelated(ctx context.Context, id string) ([]Product, error) {
	var out []Product
	err := c.do(ctx, "related", http.MethodGet, "/api/products/"+id+"/related", nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, p Product) (Product, error) {
	var out Product
	err := c.do(ctx, "create", http.MethodPost, "/api/products", p, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, id string, p Product) (Product, error) {
	var out Product
	err := c.do(ctx, "update", http.MethodPut, "/api/products/"+id, p, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/api/products/"+id, nil, nil)
}

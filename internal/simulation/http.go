package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a shared timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// postJSON posts body and decodes the JSON response into out when the status
// matches want.
func (c *HTTPClient) postJSON(ctx context.Context, url string, body, out any, want int) error {
	resp, err := c.Post(ctx, url, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// getJSON fetches url and decodes the JSON response into out.
func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

// seedConcurrently posts items with a worker pool and returns the created ids
// in submission order. Failed submissions leave an empty id slot.
func seedConcurrently[T any](ctx context.Context, client *HTTPClient, url string, items []T, workers int) ([]string, int64) {
	ids := make([]string, len(items))
	var failed int64

	type job struct {
		index int
		item  T
	}
	jobs := make(chan job, workers*2)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				var created createdEntity
				if err := client.postJSON(ctx, url, j.item, &created, http.StatusCreated); err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				ids[j.index] = created.ID
			}
		}()
	}

	for i, item := range items {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ids, failed
		case jobs <- job{index: i, item: item}:
		}
	}
	close(jobs)
	wg.Wait()
	return ids, failed
}

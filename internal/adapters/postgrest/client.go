// internal/adapters/postgrest/client.go
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stayseed/internal/adapters/observability"
	"stayseed/internal/domain"
)

// Client writes rows to a PostgREST table endpoint (<base>/rest/v1/<table>).
type Client struct {
	base  string
	table string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
}

// New builds a client. rps <= 0 disables client-side throttling.
func New(base, key, table string, timeout time.Duration, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if table == "" {
		return nil, fmt.Errorf("table is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		lim = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		table: table,
		hc:    &http.Client{Timeout: timeout},
		key:   key,
		rl:    lim,
	}, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/rest/v1/%s", c.base, c.table)
}

// WriteBatch POSTs rows as one JSON array. It never retries: whatever status
// the store returns is handed back. The error is non-nil only when no
// response was received.
func (c *Client) WriteBatch(ctx context.Context, rows []domain.Accommodation) (domain.WriteResult, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.WriteResult{}, err
	}

	body, err := json.Marshal(rows)
	if err != nil {
		return domain.WriteResult{}, fmt.Errorf("encode batch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return domain.WriteResult{}, err
	}
	// same secret under both conventions the store checks
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	req.Header.Set("User-Agent", "stayseed/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("postgrest", c.table, 0, time.Since(start))
		return domain.WriteResult{}, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("postgrest", c.table, resp.StatusCode, time.Since(start))

	// read a small body for diagnostics; return=minimal keeps it empty on success
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_, _ = io.Copy(io.Discard, resp.Body)

	return domain.WriteResult{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}, nil
}

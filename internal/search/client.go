package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/prepstack/docsearch/internal/content"
)

// DefaultDebounce is how long the client waits after the last keystroke
// before executing a query.
const DefaultDebounce = 120 * time.Millisecond

// ClientOptions configures a Client. Zero values pick sensible defaults.
type ClientOptions struct {
	// HTTPClient used to fetch the index artifact. Defaults to a client
	// with a 10s timeout.
	HTTPClient *http.Client

	// Logger for fetch failures and query errors. Defaults to slog.Default().
	Logger *slog.Logger

	// Debounce delay between the last keystroke and query execution.
	Debounce time.Duration

	// OnResults is invoked with the ranked results each time a query
	// completes (including the empty set for a cleared query).
	OnResults func([]Result)

	// OnDismiss is invoked after a result is selected, once the query and
	// result state have been cleared.
	OnDismiss func()
}

// Client answers interactive queries over a fetched index snapshot.
//
// The index is fetched and built once per client; concurrent first callers
// share the one build. If the fetch fails the client stays without an index
// and every query resolves to zero results rather than surfacing an error.
// Keystrokes are debounced: only the most recent query within the debounce
// window executes, superseded ones are dropped.
type Client struct {
	indexURL string
	httpc    *http.Client
	logger   *slog.Logger
	debounce *debouncer

	onResults func([]Result)
	onDismiss func()

	initOnce sync.Once
	index    *Index // nil when the artifact fetch failed

	mu        sync.Mutex
	query     string
	results   []Result
	searching bool
}

// NewClient creates a search client over the index artifact at indexURL.
func NewClient(indexURL string, opts *ClientOptions) *Client {
	if opts == nil {
		opts = &ClientOptions{}
	}
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Client{
		indexURL:  indexURL,
		httpc:     httpc,
		logger:    logger,
		debounce:  newDebouncer(delay),
		onResults: opts.OnResults,
		onDismiss: opts.OnDismiss,
	}
}

// Warm fetches the artifact and builds the index ahead of the first query.
// The returned error is informational; queries degrade to empty results
// either way.
func (c *Client) Warm(ctx context.Context) error {
	if c.ensureIndex(ctx) == nil {
		return fmt.Errorf("search index unavailable")
	}
	return nil
}

// SetQuery registers a keystroke. An empty or whitespace-only query clears
// the results immediately and cancels any pending execution; anything else
// schedules a debounced query, replacing a pending one.
func (c *Client) SetQuery(query string) {
	c.mu.Lock()
	c.query = query
	if strings.TrimSpace(query) == "" {
		c.results = nil
		c.searching = false
		c.mu.Unlock()
		c.debounce.Cancel()
		c.publish(nil)
		return
	}
	c.searching = true
	c.mu.Unlock()

	c.debounce.Schedule(func() {
		c.execute(query)
	})
}

// execute runs one debounced query against the index.
func (c *Client) execute(query string) {
	var results []Result
	if idx := c.ensureIndex(context.Background()); idx != nil {
		var err error
		results, err = idx.Search(query)
		if err != nil {
			c.logger.Warn("query failed", "query", query, "error", err)
			results = nil
		}
	}

	c.mu.Lock()
	if c.query != query {
		// A newer keystroke arrived while this query ran; drop the result.
		c.mu.Unlock()
		return
	}
	c.results = results
	c.searching = false
	c.mu.Unlock()

	c.publish(results)
}

// Select resolves a result to its navigation target, clears the query state,
// and invokes the dismissal callback.
func (c *Client) Select(r Result) string {
	c.mu.Lock()
	c.query = ""
	c.results = nil
	c.searching = false
	c.mu.Unlock()
	c.debounce.Cancel()

	if c.onDismiss != nil {
		c.onDismiss()
	}
	return r.Entry.Target()
}

// Results returns the results of the most recently completed query.
func (c *Client) Results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

// Searching reports whether a query is pending or in flight.
func (c *Client) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

func (c *Client) publish(results []Result) {
	if c.onResults != nil {
		c.onResults(results)
	}
}

// ensureIndex builds the index on first use. sync.Once makes concurrent
// first callers share one fetch and build; a failed build leaves the index
// nil for the lifetime of the client.
func (c *Client) ensureIndex(ctx context.Context) *Index {
	c.initOnce.Do(func() {
		idx, err := c.buildIndex(ctx)
		if err != nil {
			c.logger.Warn("search index unavailable, queries return no results",
				"url", c.indexURL, "error", err)
			return
		}
		c.index = idx
		c.logger.Info("search index ready", "entries", idx.Size())
	})
	return c.index
}

// buildIndex fetches the document snapshot and expands it into the fuzzy
// index. Network errors and 5xx responses are retried with exponential
// backoff; anything else fails immediately.
func (c *Client) buildIndex(ctx context.Context) (*Index, error) {
	var docs []content.Document

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return err // transient, retry
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("fetch index: status %d", resp.StatusCode)
			if resp.StatusCode >= 500 {
				return err
			}
			return backoff.Permanent(err)
		}
		if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
			return backoff.Permanent(fmt.Errorf("decode index: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 15 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return NewIndex(Expand(docs))
}

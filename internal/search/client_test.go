package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newArtifactServer serves the sample document snapshot and counts fetches.
func newArtifactServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fetches != nil {
			fetches.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleDocs())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_DebounceExecutesOnlyFinalQuery(t *testing.T) {
	srv := newArtifactServer(t, nil)

	var executions atomic.Int32
	done := make(chan []Result, 8)
	c := NewClient(srv.URL, &ClientOptions{
		Debounce: 30 * time.Millisecond,
		OnResults: func(results []Result) {
			executions.Add(1)
			done <- results
		},
	})
	require.NoError(t, c.Warm(context.Background()))

	// A burst of keystrokes inside the debounce window, then silence.
	for _, q := range []string{"k", "ka", "kaf", "kafka retry"} {
		c.SetQuery(q)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case results := <-done:
		require.NotEmpty(t, results)
	case <-time.After(2 * time.Second):
		t.Fatal("query never executed")
	}

	// Give any superseded timers a chance to misfire.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), executions.Load(), "only the final keystroke's query may execute")
	assert.False(t, c.Searching())

	found := false
	for _, r := range c.Results() {
		if r.Entry.Target() == "03-kafka#retry-policy" {
			found = true
		}
	}
	assert.True(t, found, "results should be for the final query")
}

func TestClient_EmptyQueryClearsWithoutFetch(t *testing.T) {
	var fetches atomic.Int32
	srv := newArtifactServer(t, &fetches)

	var published atomic.Int32
	c := NewClient(srv.URL, &ClientOptions{
		Debounce:  10 * time.Millisecond,
		OnResults: func([]Result) { published.Add(1) },
	})

	c.SetQuery("   ")
	c.SetQuery("")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fetches.Load(), "empty queries must not trigger the index fetch")
	assert.Equal(t, int32(2), published.Load(), "each clear publishes the empty result set")
	assert.Nil(t, c.Results())
	assert.False(t, c.Searching())
}

func TestClient_EmptyQueryCancelsPendingSearch(t *testing.T) {
	srv := newArtifactServer(t, nil)

	var executions atomic.Int32
	c := NewClient(srv.URL, &ClientOptions{
		Debounce: 50 * time.Millisecond,
		OnResults: func(results []Result) {
			if results != nil {
				executions.Add(1)
			}
		},
	})

	c.SetQuery("kafka")
	c.SetQuery("") // clears before the debounce fires

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), executions.Load(), "cleared query must cancel the pending execution")
}

func TestClient_FetchFailureDegradesToEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	done := make(chan []Result, 1)
	c := NewClient(srv.URL, &ClientOptions{
		Debounce:  10 * time.Millisecond,
		OnResults: func(results []Result) { done <- results },
	})

	require.Error(t, c.Warm(context.Background()))

	c.SetQuery("kafka")
	select {
	case results := <-done:
		assert.Empty(t, results, "queries without an index resolve to no results")
	case <-time.After(2 * time.Second):
		t.Fatal("query never completed")
	}
}

func TestClient_WarmSharesOneFetch(t *testing.T) {
	var fetches atomic.Int32
	srv := newArtifactServer(t, &fetches)

	c := NewClient(srv.URL, nil)

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() { done <- c.Warm(context.Background()) }()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}

	assert.Equal(t, int32(1), fetches.Load(), "concurrent first callers share one snapshot fetch")
}

func TestClient_SelectClearsStateAndDismisses(t *testing.T) {
	srv := newArtifactServer(t, nil)

	dismissed := false
	done := make(chan []Result, 1)
	c := NewClient(srv.URL, &ClientOptions{
		Debounce:  10 * time.Millisecond,
		OnResults: func(results []Result) { done <- results },
		OnDismiss: func() { dismissed = true },
	})
	require.NoError(t, c.Warm(context.Background()))

	c.SetQuery("kafka retry")
	var results []Result
	select {
	case results = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("query never completed")
	}
	require.NotEmpty(t, results)

	target := c.Select(results[0])
	assert.NotEmpty(t, target)
	assert.True(t, dismissed)
	assert.Nil(t, c.Results())
	assert.False(t, c.Searching())
}

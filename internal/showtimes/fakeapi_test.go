package showtimes_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/drewfead/showtimes/internal/showtimes"
)

const testAPIKey = "test-key"

// fakeAPI serves canned JSON bodies by path and records every request.
type fakeAPI struct {
	mu      sync.Mutex
	bodies  map[string]string
	hits    map[string]int
	queries map[string][]url.Values
	apiKeys []string
}

func newFakeAPI(t *testing.T, bodies map[string]string) (*fakeAPI, *showtimes.Client) {
	t.Helper()
	api := &fakeAPI{
		bodies:  map[string]string{},
		hits:    map[string]int{},
		queries: map[string][]url.Values{},
	}
	for path, body := range bodies {
		api.bodies[path] = body
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	now := time.Date(2020, 2, 27, 15, 0, 0, 0, time.UTC)
	client := showtimes.New(testAPIKey,
		showtimes.WithBaseURL(srv.URL+"/"),
		showtimes.WithLogger(zaptest.NewLogger(t)),
		showtimes.WithClock(func() time.Time { return now }, time.UTC),
	)
	return api, client
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.Query())
	f.apiKeys = append(f.apiKeys, r.Header.Get("X-Api-Key"))
	body, ok := f.bodies[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeAPI) set(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = body
}

func (f *fakeAPI) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.hits {
		n += h
	}
	return n
}

func (f *fakeAPI) lastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	qs := f.queries[path]
	if len(qs) == 0 {
		return nil
	}
	return qs[len(qs)-1]
}

// Package showtimes is a client for the International Showtimes v4 API.
//
// Every retrieval consults the client's entity cache first and only goes to
// the network on a miss. Returned entities are shared, cache-resident
// instances: two calls that hit the same id return the same pointer until the
// cache is cleared or the movie mapping is refreshed by GetAllCurrentMovies.
//
// Transport and decoding failures are logged and surface as an empty result;
// "not found" and "request failed" are indistinguishable to the caller. The
// only errors returned are ErrInvalidArgument for unusable caller input.
//
// A Client is meant to be used from one goroutine at a time.
package showtimes

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/cache"
	"github.com/drewfead/showtimes/internal/core"
	"github.com/drewfead/showtimes/internal/transport"
)

const (
	DefaultBaseURL  = "https://api.internationalshowtimes.com/v4"
	DefaultLanguage = "en"
	APIKeyHeader    = "x-api-key"
)

var ErrInvalidArgument = errors.New("showtimes: invalid argument")

type Client struct {
	apiKey   string
	baseURL  string
	language string
	fetcher  transport.Fetcher
	cache    *cache.Cache
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}

func WithFetcher(f transport.Fetcher) Option {
	return func(c *Client) {
		c.fetcher = f
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock sets the source of "now" and the time zone used for local
// midnights.
func WithClock(now func() time.Time, loc *time.Location) Option {
	return func(c *Client) {
		c.now = now
		c.location = loc
	}
}

// New builds a client. It does not touch the network; call
// GetAllCurrentMovies to warm the movie cache.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		language: DefaultLanguage,
		cache:    cache.New(),
		now:      time.Now,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.L()
	}
	if c.fetcher == nil {
		c.fetcher = &transport.Collector{Logger: c.logger}
	}
	return c
}

func (c *Client) Cache() *cache.Cache {
	return c.cache
}

func (c *Client) ClearCache() {
	c.cache.Clear()
}

func (c *Client) query() url.Values {
	q := url.Values{}
	q.Set("lang", c.language)
	return q
}

func (c *Client) endpoint(resource string, q url.Values) string {
	return c.baseURL + "/" + resource + "?" + q.Encode()
}

// fetch returns the decoded response body, or nil when the request or the
// decoding failed. Reads on a nil Object are safe and yield nothing.
func (c *Client) fetch(ctx context.Context, resource string, q url.Values) core.Object {
	resp, err := c.fetcher.Get(ctx, c.endpoint(resource, q), map[string]string{APIKeyHeader: c.apiKey}, nil)
	if err != nil {
		c.logger.Error("HTTP request failed", zap.String("resource", resource), zap.Error(err))
		return nil
	}
	data, err := resp.JSON()
	if err != nil {
		c.logger.Error("Failed to decode response", zap.String("resource", resource), zap.Error(err))
		return nil
	}
	return data
}

// items reads the single-object envelope key if present, else the list key.
func items(data core.Object, single, plural string) []core.Object {
	if obj := data.Object(single); len(obj) > 0 {
		return []core.Object{obj}
	}
	return data.Objects(plural)
}

// materialize runs the cache-or-construct step for each raw item, keeping
// response order. Items without an id are built but never cached.
func materialize[T any](
	raw []core.Object,
	lookup func(id string) *T,
	build func(core.Object) *T,
	put func(id string, v *T),
) []*T {
	out := make([]*T, 0, len(raw))
	for _, item := range raw {
		id := core.Deref(item.String("id"))
		if id != "" {
			if hit := lookup(id); hit != nil {
				out = append(out, hit)
				continue
			}
		}
		v := build(item)
		if id != "" {
			put(id, v)
		}
		out = append(out, v)
	}
	return out
}

func (c *Client) cachedMovie(id string) *core.Movie {
	m, _ := c.cache.LookupMovie(id, "")
	return m
}

func (c *Client) cachedCinema(id string) *core.Cinema {
	return c.cache.LookupCinema(id, nil, nil)
}

func (c *Client) materializeMovies(raw []core.Object) []*core.Movie {
	return materialize(raw, c.cachedMovie, core.NewMovie, c.cache.PutMovie)
}

func (c *Client) materializeCinemas(raw []core.Object) []*core.Cinema {
	return materialize(raw, c.cachedCinema, core.NewCinema, c.cache.PutCinema)
}

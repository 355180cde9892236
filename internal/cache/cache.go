// Package cache holds the per-client entity cache: one id-keyed mapping per
// entity type, with secondary lookups by title, name or coordinates. Lookups
// never touch the network. Entries live until a mapping or the whole cache is
// cleared; there is no expiry.
package cache

import (
	"errors"
	"sync"

	"github.com/drewfead/showtimes/internal/core"
)

var ErrMissingKey = errors.New("cache: provide either a movie id or a title")

type table[T any] struct {
	items map[string]*T
}

func newTable[T any]() table[T] {
	return table[T]{items: make(map[string]*T)}
}

func (t table[T]) get(id string) *T {
	if id == "" {
		return nil
	}
	return t.items[id]
}

func (t table[T]) find(match func(*T) bool) *T {
	for _, item := range t.items {
		if match(item) {
			return item
		}
	}
	return nil
}

// Cache is safe for concurrent use, but the client that owns it is not: two
// callers racing on the same miss can still both construct an entity.
type Cache struct {
	mu        sync.RWMutex
	movies    table[core.Movie]
	cinemas   table[core.Cinema]
	showtimes table[core.Showtime]
	chains    table[core.Chain]
	genres    table[core.Genre]
}

func New() *Cache {
	c := &Cache{}
	c.reset()
	return c
}

func (c *Cache) reset() {
	c.movies = newTable[core.Movie]()
	c.cinemas = newTable[core.Cinema]()
	c.showtimes = newTable[core.Showtime]()
	c.chains = newTable[core.Chain]()
	c.genres = newTable[core.Genre]()
}

// LookupMovie prefers an exact id match and otherwise scans for an exact
// title match.
func (c *Cache) LookupMovie(id, title string) (*core.Movie, error) {
	if id == "" && title == "" {
		return nil, ErrMissingKey
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if m := c.movies.get(id); m != nil {
		return m, nil
	}
	if title == "" {
		return nil, nil
	}
	return c.movies.find(func(m *core.Movie) bool {
		return m.Title != nil && *m.Title == title
	}), nil
}

// LookupCinema prefers an exact id match; otherwise both coordinates must be
// given and match exactly.
func (c *Cache) LookupCinema(id string, lat, lon *float64) *core.Cinema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cinema := c.cinemas.get(id); cinema != nil {
		return cinema
	}
	if lat == nil || lon == nil {
		return nil
	}
	return c.cinemas.find(func(cinema *core.Cinema) bool {
		return cinema.Lat != nil && cinema.Lon != nil && *cinema.Lat == *lat && *cinema.Lon == *lon
	})
}

func (c *Cache) LookupShowtime(id string) *core.Showtime {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.showtimes.get(id)
}

func (c *Cache) LookupChain(id, name string) *core.Chain {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if chain := c.chains.get(id); chain != nil {
		return chain
	}
	if name == "" {
		return nil
	}
	return c.chains.find(func(chain *core.Chain) bool {
		return chain.Name != nil && *chain.Name == name
	})
}

func (c *Cache) LookupGenre(id, name string) *core.Genre {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if genre := c.genres.get(id); genre != nil {
		return genre
	}
	if name == "" {
		return nil
	}
	return c.genres.find(func(genre *core.Genre) bool {
		return genre.Name != nil && *genre.Name == name
	})
}

func (c *Cache) PutMovie(id string, m *core.Movie) {
	c.mu.Lock()
	c.movies.items[id] = m
	c.mu.Unlock()
}

func (c *Cache) PutCinema(id string, cinema *core.Cinema) {
	c.mu.Lock()
	c.cinemas.items[id] = cinema
	c.mu.Unlock()
}

func (c *Cache) PutShowtime(id string, s *core.Showtime) {
	c.mu.Lock()
	c.showtimes.items[id] = s
	c.mu.Unlock()
}

func (c *Cache) PutChain(id string, chain *core.Chain) {
	c.mu.Lock()
	c.chains.items[id] = chain
	c.mu.Unlock()
}

func (c *Cache) PutGenre(id string, genre *core.Genre) {
	c.mu.Lock()
	c.genres.items[id] = genre
	c.mu.Unlock()
}

// ReplaceMovies discards every cached movie and installs the given set.
// Movies without an id are skipped.
func (c *Cache) ReplaceMovies(movies []*core.Movie) {
	next := newTable[core.Movie]()
	for _, m := range movies {
		if m.ID != nil {
			next.items[*m.ID] = m
		}
	}
	c.mu.Lock()
	c.movies = next
	c.mu.Unlock()
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
}

func (c *Cache) ClearMovies() {
	c.mu.Lock()
	c.movies = newTable[core.Movie]()
	c.mu.Unlock()
}

func (c *Cache) ClearCinemas() {
	c.mu.Lock()
	c.cinemas = newTable[core.Cinema]()
	c.mu.Unlock()
}

func (c *Cache) ClearShowtimes() {
	c.mu.Lock()
	c.showtimes = newTable[core.Showtime]()
	c.mu.Unlock()
}

func (c *Cache) ClearChains() {
	c.mu.Lock()
	c.chains = newTable[core.Chain]()
	c.mu.Unlock()
}

func (c *Cache) ClearGenres() {
	c.mu.Lock()
	c.genres = newTable[core.Genre]()
	c.mu.Unlock()
}

// Stats reports how many entities each mapping holds.
type Stats struct {
	Movies    int `json:"movies"`
	Cinemas   int `json:"cinemas"`
	Showtimes int `json:"showtimes"`
	Chains    int `json:"chains"`
	Genres    int `json:"genres"`
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Movies:    len(c.movies.items),
		Cinemas:   len(c.cinemas.items),
		Showtimes: len(c.showtimes.items),
		Chains:    len(c.chains.items),
		Genres:    len(c.genres.items),
	}
}

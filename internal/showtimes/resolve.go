package showtimes

import (
	"context"

	"github.com/drewfead/showtimes/internal/core"
)

// Resolver fetches the entities a showtime refers to. *Client implements it.
type Resolver interface {
	GetMovie(ctx context.Context, mq MovieQuery) ([]*core.Movie, error)
	GetCinemas(ctx context.Context, cq CinemaQuery) []*core.Cinema
}

var _ Resolver = (*Client)(nil)

// ResolveShowtime attaches the first movie and cinema the resolver returns
// for the showtime's ids. Links that are already set are left alone. This may
// issue network calls and populate the cache.
func ResolveShowtime(ctx context.Context, st *core.Showtime, r Resolver) {
	if id := core.Deref(st.MovieID); id != "" && st.Movie == nil {
		if movies, err := r.GetMovie(ctx, MovieQuery{ID: id}); err == nil && len(movies) > 0 {
			st.Movie = movies[0]
		}
	}
	if id := core.Deref(st.CinemaID); id != "" && st.Cinema == nil {
		if cinemas := r.GetCinemas(ctx, CinemaQuery{ID: id}); len(cinemas) > 0 {
			st.Cinema = cinemas[0]
		}
	}
}

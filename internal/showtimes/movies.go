package showtimes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/cache"
	"github.com/drewfead/showtimes/internal/core"
)

type MovieQuery struct {
	Title string
	ID    string
}

// GetAllCurrentMovies fetches every movie currently playing, optionally at
// one cinema. A successful response replaces the whole movie cache, so
// previously returned instances are no longer shared with later lookups.
func (c *Client) GetAllCurrentMovies(ctx context.Context, cinemaID string) []*core.Movie {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_all_current_movies")
	defer span.End()

	q := c.query()
	if cinemaID != "" {
		q.Set("cinema_id", cinemaID)
	}
	raw := c.fetch(ctx, "movies", q).Objects("movies")
	if len(raw) == 0 {
		return nil
	}

	movies := make([]*core.Movie, 0, len(raw))
	for _, item := range raw {
		movies = append(movies, core.NewMovie(item))
	}
	c.cache.ReplaceMovies(movies)

	span.SetAttributes(attribute.Int("results", len(movies)))
	c.logger.Debug("Refreshed movie cache", zap.Int("movies", len(movies)))
	return movies
}

// GetUpcomingMovies fetches movies releasing from tomorrow's local midnight
// onward and merges them into the movie cache.
func (c *Client) GetUpcomingMovies(ctx context.Context) []*core.Movie {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_upcoming_movies")
	defer span.End()

	tomorrow := NextMidnight(c.now().In(c.location))
	q := c.query()
	q.Set("include_upcoming", "true")
	q.Set("release_date_from", strconv.FormatInt(tomorrow.Unix(), 10))

	out := c.materializeMovies(c.fetch(ctx, "movies", q).Objects("movies"))
	span.SetAttributes(attribute.Int("results", len(out)))
	return out
}

// GetMovie looks a movie up by id or by exact title. The id wins when both
// are given.
//
// When a title search returns nothing, the full current-movie list is
// re-fetched (refreshing the movie cache) and filtered by the query id. For a
// title-only query that id is empty, so the fallback never yields a match.
func (c *Client) GetMovie(ctx context.Context, mq MovieQuery) ([]*core.Movie, error) {
	if mq.ID == "" && mq.Title == "" {
		return nil, fmt.Errorf("%w: provide a movie title or a movie id", ErrInvalidArgument)
	}

	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_movie")
	defer span.End()
	span.SetAttributes(attribute.String("movie.id", mq.ID), attribute.String("movie.title", mq.Title))

	hit, err := c.cache.LookupMovie(mq.ID, mq.Title)
	if errors.Is(err, cache.ErrMissingKey) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if hit != nil {
		c.logger.Debug("Movie cache hit", zap.String("id", mq.ID), zap.String("title", mq.Title))
		return []*core.Movie{hit}, nil
	}

	if mq.ID != "" {
		data := c.fetch(ctx, "movies/"+url.PathEscape(mq.ID), c.query())
		return c.materializeMovies(items(data, "movie", "movies")), nil
	}

	q := c.query()
	q.Set("search_query", mq.Title)
	q.Set("search_field", "title")
	out := c.materializeMovies(c.fetch(ctx, "movies", q).Objects("movies"))
	if len(out) > 0 {
		return out, nil
	}
	return filterMovies(c.GetAllCurrentMovies(ctx, ""), "", mq.ID), nil
}

// filterMovies keeps movies matching the title or the id. A movie matching
// both appears twice.
func filterMovies(movies []*core.Movie, title, id string) []*core.Movie {
	var out []*core.Movie
	for _, m := range movies {
		if title != "" && core.Deref(m.Title) == title {
			out = append(out, m)
		}
		if id != "" && core.Deref(m.ID) == id {
			out = append(out, m)
		}
	}
	return out
}

package showtimes

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/core"
)

// ShowtimeQuery selects showtimes. Movie takes precedence over Title.
// StartDay and EndDay are MM/DD/YY dates bounding the start time.
type ShowtimeQuery struct {
	ID       string
	Movie    *core.Movie
	Title    string
	Cinema   *core.Cinema
	Location *Location
	StartDay string
	EndDay   string

	// SkipAdditionalCalls leaves the movie and cinema links unset; only the
	// raw ids are populated.
	SkipAdditionalCalls bool
}

// GetShowtimes picks the narrowest query the arguments allow:
//   - cinema and movie: that movie at that cinema
//   - cinema only: everything at that cinema, with movies inlined
//   - movie only: that movie everywhere (near Location), with cinemas inlined
//   - otherwise: everything (near Location), with movies and cinemas inlined
//
// A title that matches no movie falls back to the last form. Movie and Cinema
// only shape the query. Inlined movies and cinemas are cached, and each
// showtime's links are resolved through the cache-first lookups unless
// SkipAdditionalCalls is set, in which case only the raw ids are populated.
func (c *Client) GetShowtimes(ctx context.Context, sq ShowtimeQuery) ([]*core.Showtime, error) {
	var timeFrom, timeTo string
	if sq.StartDay != "" {
		day, err := ParseDay(sq.StartDay, c.location)
		if err != nil {
			return nil, err
		}
		timeFrom = strconv.FormatInt(day.Unix(), 10)
	}
	if sq.EndDay != "" {
		day, err := ParseDay(sq.EndDay, c.location)
		if err != nil {
			return nil, err
		}
		timeTo = strconv.FormatInt(day.Unix(), 10)
	}

	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_showtimes")
	defer span.End()

	if hit := c.cache.LookupShowtime(sq.ID); hit != nil {
		c.logger.Debug("Showtime cache hit", zap.String("id", sq.ID))
		return []*core.Showtime{hit}, nil
	}

	movie := sq.Movie
	if movie == nil && sq.Title != "" {
		movies, err := c.GetMovie(ctx, MovieQuery{Title: sq.Title})
		if err != nil {
			return nil, err
		}
		if len(movies) > 0 {
			movie = movies[0]
		}
	}

	q := c.query()
	switch {
	case sq.Cinema != nil && movie != nil:
		q.Set("cinema_id", core.Deref(sq.Cinema.ID))
		q.Set("movie_id", core.Deref(movie.ID))
	case sq.Cinema != nil && sq.Title == "":
		q.Set("cinema_id", core.Deref(sq.Cinema.ID))
		q.Add("append", "movies")
	case sq.Cinema == nil && movie != nil:
		q.Add("append", "cinemas")
		q.Set("movie_id", core.Deref(movie.ID))
		if sq.Location != nil {
			q.Set("location", sq.Location.String())
		}
	default:
		q.Add("append", "cinemas")
		q.Add("append", "movies")
		if sq.Location != nil {
			q.Set("location", sq.Location.String())
		}
	}
	if timeFrom != "" {
		q.Set("time_from", timeFrom)
	}
	if timeTo != "" {
		q.Set("time_to", timeTo)
	}

	data := c.fetch(ctx, "showtimes", q)
	// Expansions only warm the cache; links come from resolution below.
	c.materializeMovies(data.Objects("movies"))
	c.materializeCinemas(data.Objects("cinemas"))

	build := func(item core.Object) *core.Showtime {
		st := core.NewShowtime(item)
		if !sq.SkipAdditionalCalls {
			ResolveShowtime(ctx, st, c)
		}
		return st
	}
	out := materialize(data.Objects("showtimes"), c.cache.LookupShowtime, build, c.cache.PutShowtime)

	span.SetAttributes(attribute.Int("results", len(out)))
	return out, nil
}

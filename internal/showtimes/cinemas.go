package showtimes

import (
	"context"
	"net/url"
	"strconv"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/core"
)

type Location struct {
	Lat float64
	Lon float64
}

func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lon, 'f', -1, 64)
}

// CinemaQuery narrows a cinema search. Location is sent to the API; every
// other field is matched client-side, case-sensitively.
type CinemaQuery struct {
	ID       string
	Name     string
	City     string
	ZipCode  string
	State    string
	Location *Location
}

// GetCinemas tries the single-cinema endpoint when an id is given and falls
// back to listing cinemas (near Location, if set) and filtering them.
func (c *Client) GetCinemas(ctx context.Context, cq CinemaQuery) []*core.Cinema {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_cinemas")
	defer span.End()
	span.SetAttributes(attribute.String("cinema.id", cq.ID))

	var lat, lon *float64
	if cq.Location != nil {
		lat, lon = &cq.Location.Lat, &cq.Location.Lon
	}
	if hit := c.cache.LookupCinema(cq.ID, lat, lon); hit != nil {
		c.logger.Debug("Cinema cache hit", zap.String("id", cq.ID))
		return []*core.Cinema{hit}
	}

	if cq.ID != "" {
		raw := items(c.fetch(ctx, "cinemas/"+url.PathEscape(cq.ID), c.query()), "cinema", "cinemas")
		if len(raw) > 0 {
			return c.materializeCinemas(raw[:1])
		}
		c.logger.Debug("Single cinema lookup came back empty, listing instead", zap.String("id", cq.ID))
	}

	q := c.query()
	if cq.Location != nil {
		q.Set("location", cq.Location.String())
	}
	all := c.materializeCinemas(c.fetch(ctx, "cinemas", q).Objects("cinemas"))
	out := filterCinemas(all, cq)
	span.SetAttributes(attribute.Int("results", len(out)))
	return out
}

// filterCinemas applies the query's client-side filters. A cinema missing a
// compared field passes that filter, except for the zip code, which must be
// present once the cinema has an address. Address filters are skipped for
// cinemas without an address.
func filterCinemas(cinemas []*core.Cinema, cq CinemaQuery) []*core.Cinema {
	var out []*core.Cinema
	for _, cinema := range cinemas {
		if matchesCinema(cinema, cq) {
			out = append(out, cinema)
		}
	}
	return out
}

func matchesCinema(cinema *core.Cinema, cq CinemaQuery) bool {
	if mismatch(cq.Name, cinema.Name) || mismatch(cq.ID, cinema.ID) {
		return false
	}
	if !hasAddress(cinema) {
		return true
	}
	if mismatch(cq.City, cinema.City) {
		return false
	}
	if cq.ZipCode != "" && (cinema.ZipCode == nil || *cinema.ZipCode != cq.ZipCode) {
		return false
	}
	if cq.State != "" {
		if utf8.RuneCountInString(cq.State) == 2 {
			return !mismatch(cq.State, cinema.StateAbbr)
		}
		return !mismatch(cq.State, cinema.State)
	}
	return true
}

func mismatch(want string, have *string) bool {
	return want != "" && have != nil && *have != "" && *have != want
}

func hasAddress(cinema *core.Cinema) bool {
	return len(cinema.Data.Object("location").Object("address")) > 0
}

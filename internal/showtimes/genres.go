package showtimes

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/drewfead/showtimes/internal/core"
)

type GenreQuery struct {
	ID   string
	Name string
}

func (c *Client) GetGenres(ctx context.Context, gq GenreQuery) []*core.Genre {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_genres")
	defer span.End()

	if hit := c.cache.LookupGenre(gq.ID, gq.Name); hit != nil {
		return []*core.Genre{hit}
	}

	lookup := func(id string) *core.Genre { return c.cache.LookupGenre(id, "") }
	out := materialize(c.fetch(ctx, "genres", c.query()).Objects("genres"), lookup, core.NewGenre, c.cache.PutGenre)
	if gq.ID == "" && gq.Name == "" {
		return out
	}

	var filtered []*core.Genre
	for _, g := range out {
		if (gq.ID != "" && gq.ID == core.Deref(g.ID)) || (gq.Name != "" && gq.Name == core.Deref(g.Name)) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// GetCountries lists the countries the API covers. Countries are not cached.
func (c *Client) GetCountries(ctx context.Context) []*core.Country {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_countries")
	defer span.End()

	raw := c.fetch(ctx, "countries", c.query()).Objects("countries")
	out := make([]*core.Country, 0, len(raw))
	for _, item := range raw {
		out = append(out, core.NewCountry(item))
	}
	return out
}

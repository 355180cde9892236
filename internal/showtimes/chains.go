package showtimes

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/drewfead/showtimes/internal/core"
)

type ChainQuery struct {
	ID           string
	Name         string
	CountryCodes []string
}

// GetChains lists cinema chains, optionally only those operating in
// CountryCodes, and keeps the ones whose trimmed name or id matches.
func (c *Client) GetChains(ctx context.Context, cq ChainQuery) []*core.Chain {
	ctx, span := otel.Tracer("showtimes.client").Start(ctx, "get_chains")
	defer span.End()

	if hit := c.cache.LookupChain(cq.ID, cq.Name); hit != nil {
		return []*core.Chain{hit}
	}

	q := c.query()
	if len(cq.CountryCodes) > 0 {
		q.Set("countries", strings.Join(cq.CountryCodes, ","))
	}
	lookup := func(id string) *core.Chain { return c.cache.LookupChain(id, "") }
	out := materialize(c.fetch(ctx, "chains", q).Objects("chains"), lookup, core.NewChain, c.cache.PutChain)

	if cq.Name != "" || cq.ID != "" {
		name, id := strings.TrimSpace(cq.Name), strings.TrimSpace(cq.ID)
		var filtered []*core.Chain
		for _, chain := range out {
			if (name != "" && name == strings.TrimSpace(core.Deref(chain.Name))) ||
				(id != "" && id == strings.TrimSpace(core.Deref(chain.ID))) {
				filtered = append(filtered, chain)
			}
		}
		out = filtered
	}
	span.SetAttributes(attribute.Int("results", len(out)))
	return out
}

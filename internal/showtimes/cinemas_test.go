package showtimes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/showtimes/internal/core"
	"github.com/drewfead/showtimes/internal/showtimes"
)

const cinemasBody = `{"cinemas": [
	{"id": "1", "name": "Plaza", "location": {"lat": 33.783, "lon": -84.333, "address": {
		"city": "Atlanta", "zipcode": "30306", "state": "Georgia", "state_abbr": "GA"}}},
	{"id": "2", "name": "Vista", "location": {"lat": 34.1, "lon": -118.3, "address": {
		"city": "Los Angeles", "zipcode": "90027", "state": "California", "state_abbr": "CA"}}},
	{"id": "3", "name": "Odd", "location": {"lat": 1, "lon": 1, "address": {
		"city": "Nowhere", "state": "CA", "state_abbr": "XX"}}},
	{"id": "4", "name": "Bare"},
	{"id": "5", "name": "Kino", "location": {"address": {
		"city": "Ulm", "state": "Ü", "state_abbr": "BW"}}}
]}`

func ids(cinemas []*core.Cinema) []string {
	out := make([]string, 0, len(cinemas))
	for _, c := range cinemas {
		out = append(out, core.Deref(c.ID))
	}
	return out
}

func Test_Unit_GetCinemas_Filters(t *testing.T) {
	tests := []struct {
		name      string
		query     showtimes.CinemaQuery
		expectIDs []string
	}{
		{name: "no filter", query: showtimes.CinemaQuery{}, expectIDs: []string{"1", "2", "3", "4", "5"}},
		{name: "state abbreviation", query: showtimes.CinemaQuery{State: "CA"}, expectIDs: []string{"2", "4"}},
		{name: "state full name", query: showtimes.CinemaQuery{State: "California"}, expectIDs: []string{"2", "4"}},
		{name: "state is case sensitive", query: showtimes.CinemaQuery{State: "california"}, expectIDs: []string{"4"}},
		{name: "single character state is a full name", query: showtimes.CinemaQuery{State: "Ü"}, expectIDs: []string{"4", "5"}},
		{name: "city", query: showtimes.CinemaQuery{City: "Atlanta"}, expectIDs: []string{"1", "4"}},
		{name: "zip requires a value", query: showtimes.CinemaQuery{ZipCode: "30306"}, expectIDs: []string{"1", "4"}},
		{name: "name", query: showtimes.CinemaQuery{Name: "Vista"}, expectIDs: []string{"2"}},
		{name: "combined", query: showtimes.CinemaQuery{City: "Atlanta", State: "CA"}, expectIDs: []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newFakeAPI(t, map[string]string{"/cinemas": cinemasBody})

			actual := client.GetCinemas(context.Background(), tt.query)
			assert.Equal(t, tt.expectIDs, ids(actual))
		})
	}
}

func Test_Unit_GetCinemas_ByIDFallsBackToList(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{"/cinemas": cinemasBody})
	ctx := context.Background()

	cinemas := client.GetCinemas(ctx, showtimes.CinemaQuery{ID: "2"})
	require.Len(t, cinemas, 1)
	assert.Equal(t, "Vista", core.Deref(cinemas[0].Name))
	assert.Equal(t, 1, api.count("/cinemas/2"))
	assert.Equal(t, 1, api.count("/cinemas"))

	again := client.GetCinemas(ctx, showtimes.CinemaQuery{ID: "2"})
	require.Len(t, again, 1)
	assert.Same(t, cinemas[0], again[0])
	assert.Equal(t, 2, api.total())
}

func Test_Unit_GetCinemas_ByIDEndpoint(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/cinemas/56556": `{"cinema": {"id": "56556", "name": "Plaza"}}`,
	})

	cinemas := client.GetCinemas(context.Background(), showtimes.CinemaQuery{ID: "56556"})
	require.Len(t, cinemas, 1)
	assert.Equal(t, "Plaza", core.Deref(cinemas[0].Name))
	assert.Zero(t, api.count("/cinemas"))
}

func Test_Unit_GetCinemas_Location(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{"/cinemas": cinemasBody})
	ctx := context.Background()
	loc := &showtimes.Location{Lat: 33.783, Lon: -84.333}

	all := client.GetCinemas(ctx, showtimes.CinemaQuery{Location: loc})
	require.Len(t, all, 5)
	assert.Equal(t, "33.783,-84.333", api.lastQuery("/cinemas").Get("location"))

	hit := client.GetCinemas(ctx, showtimes.CinemaQuery{Location: loc})
	require.Len(t, hit, 1)
	assert.Same(t, all[0], hit[0])
	assert.Equal(t, 1, api.total())
}

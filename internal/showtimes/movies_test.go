package showtimes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewfead/showtimes/internal/core"
	"github.com/drewfead/showtimes/internal/showtimes"
)

func Test_Unit_GetMovie_RequiresTitleOrID(t *testing.T) {
	api, client := newFakeAPI(t, nil)

	movies, err := client.GetMovie(context.Background(), showtimes.MovieQuery{})
	assert.ErrorIs(t, err, showtimes.ErrInvalidArgument)
	assert.Nil(t, movies)
	assert.Zero(t, api.total())
}

func Test_Unit_GetMovie_CachedIDSkipsNetwork(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": [{"id": "123", "title": "Gladiator"}, {"id": "456", "title": "Heat"}]}`,
	})
	ctx := context.Background()

	all := client.GetAllCurrentMovies(ctx, "")
	require.Len(t, all, 2)
	require.Equal(t, 1, api.total())

	movies, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "123"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Same(t, all[0], movies[0])

	movies, err = client.GetMovie(ctx, showtimes.MovieQuery{Title: "Heat"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Same(t, all[1], movies[0])

	assert.Equal(t, 1, api.total())
}

func Test_Unit_GetMovie_ByIDIsStable(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies/59251": `{"movie": {"id": "59251", "title": "The Invisible Man"}}`,
	})
	ctx := context.Background()

	first, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "59251"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "The Invisible Man", core.Deref(first[0].Title))

	second, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "59251"})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Same(t, first[0], second[0])

	assert.Equal(t, 1, api.count("/movies/59251"))
	assert.Equal(t, []string{testAPIKey}, api.apiKeys)
	assert.Equal(t, "en", api.lastQuery("/movies/59251").Get("lang"))
}

func Test_Unit_GetMovie_ByIDPluralEnvelope(t *testing.T) {
	_, client := newFakeAPI(t, map[string]string{
		"/movies/1": `{"movies": [{"id": "1", "title": "Alien"}]}`,
	})

	movies, err := client.GetMovie(context.Background(), showtimes.MovieQuery{ID: "1"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", core.Deref(movies[0].Title))
}

func Test_Unit_GetMovie_ByTitle(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": [{"id": "9", "title": "Gladiator"}]}`,
	})

	movies, err := client.GetMovie(context.Background(), showtimes.MovieQuery{Title: "Gladiator"})
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "9", core.Deref(movies[0].ID))

	q := api.lastQuery("/movies")
	assert.Equal(t, "Gladiator", q.Get("search_query"))
	assert.Equal(t, "title", q.Get("search_field"))
}

func Test_Unit_GetMovie_TitleFallbackRefreshesWithoutMatching(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": []}`,
	})

	movies, err := client.GetMovie(context.Background(), showtimes.MovieQuery{Title: "Nothing"})
	require.NoError(t, err)
	assert.Empty(t, movies)

	assert.Equal(t, 2, api.count("/movies"))
	assert.Empty(t, api.lastQuery("/movies").Get("search_query"))
}

func Test_Unit_GetAllCurrentMovies_FullRefresh(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": [{"id": "1", "title": "Gladiator"}, {"id": "2", "title": "Heat"}]}`,
	})
	ctx := context.Background()

	first := client.GetAllCurrentMovies(ctx, "")
	require.Len(t, first, 2)

	api.set("/movies", `{"movies": [{"id": "2", "title": "Heat"}, {"id": "3", "title": "Alien"}]}`)
	second := client.GetAllCurrentMovies(ctx, "c1")
	require.Len(t, second, 2)
	assert.NotSame(t, first[1], second[0])
	assert.Equal(t, "c1", api.lastQuery("/movies").Get("cinema_id"))

	cached, err := client.Cache().LookupMovie("1", "")
	require.NoError(t, err)
	assert.Nil(t, cached)
	cached, err = client.Cache().LookupMovie("3", "")
	require.NoError(t, err)
	assert.Same(t, second[1], cached)
	assert.Equal(t, 2, client.Cache().Stats().Movies)
}

func Test_Unit_GetAllCurrentMovies_FailureKeepsCache(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": [{"id": "1", "title": "Gladiator"}]}`,
	})
	ctx := context.Background()
	require.Len(t, client.GetAllCurrentMovies(ctx, ""), 1)

	api.set("/movies", `not json`)
	assert.Empty(t, client.GetAllCurrentMovies(ctx, ""))
	assert.Equal(t, 1, client.Cache().Stats().Movies)
}

func Test_Unit_GetUpcomingMovies(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies": `{"movies": [{"id": "1", "title": "Gladiator"}]}`,
	})
	ctx := context.Background()
	current := client.GetAllCurrentMovies(ctx, "")
	require.Len(t, current, 1)

	api.set("/movies", `{"movies": [{"id": "1", "title": "Gladiator"}, {"id": "5", "title": "Tenet"}]}`)
	upcoming := client.GetUpcomingMovies(ctx)
	require.Len(t, upcoming, 2)
	assert.Same(t, current[0], upcoming[0])

	q := api.lastQuery("/movies")
	assert.Equal(t, "true", q.Get("include_upcoming"))
	assert.Equal(t, "1582848000", q.Get("release_date_from"))
	assert.Equal(t, 2, client.Cache().Stats().Movies)
}

func Test_Unit_ClearCache(t *testing.T) {
	api, client := newFakeAPI(t, map[string]string{
		"/movies/1": `{"movie": {"id": "1"}}`,
	})
	ctx := context.Background()

	first, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "1"})
	require.NoError(t, err)
	client.ClearCache()
	second, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "1"})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, 2, api.count("/movies/1"))
}

func Test_Unit_TransportFailureYieldsEmpty(t *testing.T) {
	_, client := newFakeAPI(t, nil)
	ctx := context.Background()

	movies, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: "404"})
	assert.NoError(t, err)
	assert.Empty(t, movies)
	assert.Empty(t, client.GetCinemas(ctx, showtimes.CinemaQuery{City: "Atlanta"}))
	assert.Empty(t, client.GetChains(ctx, showtimes.ChainQuery{}))
}

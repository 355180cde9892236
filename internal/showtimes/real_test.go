package showtimes_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/drewfead/showtimes/internal/showtimes"
)

func Test_Real_GetAllCurrentMovies(t *testing.T) {
	apiKey := os.Getenv("SHOWTIMES_API_KEY")
	if apiKey == "" {
		t.Skip("SHOWTIMES_API_KEY not provided")
	}
	client := showtimes.New(apiKey, showtimes.WithLogger(zaptest.NewLogger(t)))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	movies := client.GetAllCurrentMovies(ctx, "")
	require.NotEmpty(t, movies)

	again, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: *movies[0].ID})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Same(t, movies[0], again[0])
}

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/urfave/cli/v2"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/drewfead/showtimes/internal/config"
	"github.com/drewfead/showtimes/internal/core"
	"github.com/drewfead/showtimes/internal/showtimes"
	"github.com/drewfead/showtimes/internal/transport"
)

var (
	profileFlag = &cli.BoolFlag{
		Name:  "profile",
		Usage: "Enable pprof profiling for this run",
		Value: false,
	}

	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Set the verbosity of the logger",
		Value: "info",
	}

	outputFormatFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Set the output format",
		Value:   "json",
	}

	apiKeyFlag = &cli.StringFlag{
		Name:  "api-key",
		Usage: "API key sent with every request (default: $SHOWTIMES_API_KEY)",
	}

	languageFlag = &cli.StringFlag{
		Name:  "lang",
		Usage: "Response language (default: $SHOWTIMES_LANGUAGE or en)",
	}

	baseURLFlag = &cli.StringFlag{
		Name:  "base-url",
		Usage: "API base URL (default: $SHOWTIMES_BASE_URL)",
	}

	idFlag = &cli.StringFlag{
		Name:  "id",
		Usage: "Entity id",
	}

	titleFlag = &cli.StringFlag{
		Name:  "title",
		Usage: "Exact movie title",
	}

	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "Exact name",
	}

	cinemaIDFlag = &cli.StringFlag{
		Name:  "cinema-id",
		Usage: "Cinema id",
	}

	movieIDFlag = &cli.StringFlag{
		Name:  "movie-id",
		Usage: "Movie id",
	}

	cityFlag = &cli.StringFlag{
		Name:  "city",
		Usage: "Exact city name",
	}

	zipFlag = &cli.StringFlag{
		Name:  "zip",
		Usage: "Zip code",
	}

	stateFlag = &cli.StringFlag{
		Name:  "state",
		Usage: "Two-letter state abbreviation or full state name",
	}

	latFlag = &cli.Float64Flag{
		Name:  "lat",
		Usage: "Latitude to search around (requires --lon)",
	}

	lonFlag = &cli.Float64Flag{
		Name:  "lon",
		Usage: "Longitude to search around (requires --lat)",
	}

	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "First day, MM/DD/YY",
	}

	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Last day, MM/DD/YY",
	}

	skipLookupsFlag = &cli.BoolFlag{
		Name:  "skip-lookups",
		Usage: "Do not fetch the movie and cinema of each showtime",
		Value: false,
	}

	countryFlag = &cli.StringSliceFlag{
		Name:  "country",
		Usage: "ISO country code to restrict chains to (repeatable)",
	}
)

var commonFlags = []cli.Flag{
	verbosityFlag,
	profileFlag,
	outputFormatFlag,
	apiKeyFlag,
	languageFlag,
	baseURLFlag,
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, commonFlags...), flags...)
}

func setup(ctx *cli.Context) []func() {
	zapCfg := zap.NewDevelopmentConfig()
	level, err := zap.ParseAtomicLevel(ctx.String(verbosityFlag.Name))
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		zap.L().Debug(fmt.Sprintf(format, args...))
	}))

	out := []func(){
		func() { _ = logger.Sync() },
	}

	if ctx.Bool(profileFlag.Name) {
		cpuProfile, err := os.Create("/tmp/cpu_profile.prof")
		if err != nil {
			log.Fatal(err)
		}

		if err := pprof.StartCPUProfile(cpuProfile); err != nil {
			log.Fatal(err)
		}

		out = append(out, func() {
			pprof.StopCPUProfile()
		})

		memProfile, err := os.Create("/tmp/memory_profile.prof")
		if err != nil {
			log.Fatal(err)
		}

		out = append(out, func() {
			memProfile.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(memProfile); err != nil {
				zap.L().Error("Failed to write heap profile", zap.Error(err))
			}
		})
	}

	return out
}

func cleanup(ctx *cli.Context, steps ...func()) {
	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}

func results(ctx *cli.Context, v any) error {
	switch ctx.String(outputFormatFlag.Name) {
	case "json":
		enc := json.NewEncoder(ctx.App.Writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %s", ctx.String(outputFormatFlag.Name))
	}
}

// newClient builds a client from the environment, letting flags override it.
func newClient(ctx *cli.Context) (*showtimes.Client, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(apiKeyFlag.Name) {
		cfg.APIKey = ctx.String(apiKeyFlag.Name)
	}
	if ctx.IsSet(languageFlag.Name) {
		cfg.Language = ctx.String(languageFlag.Name)
	}
	if ctx.IsSet(baseURLFlag.Name) {
		cfg.BaseURL = ctx.String(baseURLFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zap.L()
	return showtimes.New(cfg.APIKey,
		showtimes.WithBaseURL(cfg.BaseURL),
		showtimes.WithLanguage(cfg.Language),
		showtimes.WithLogger(logger),
		showtimes.WithFetcher(&transport.Collector{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout(),
			Logger:    logger,
		}),
	), nil
}

func location(ctx *cli.Context) *showtimes.Location {
	if !ctx.IsSet(latFlag.Name) || !ctx.IsSet(lonFlag.Name) {
		return nil
	}
	return &showtimes.Location{Lat: ctx.Float64(latFlag.Name), Lon: ctx.Float64(lonFlag.Name)}
}

// run wraps a command body with the shared setup, client construction and
// output steps.
func run(fn func(c *cli.Context, client *showtimes.Client) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		cleanupSteps := setup(c)
		defer cleanup(c, cleanupSteps...)

		client, err := newClient(c)
		if err != nil {
			return err
		}
		out, err := fn(c, client)
		if err != nil {
			return err
		}
		return results(c, out)
	}
}

var Lookups = []*cli.Command{
	{
		Name:     "movies",
		Usage:    "List movies playing now, optionally at one cinema",
		Category: "movies",
		Flags:    withCommon(cinemaIDFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetAllCurrentMovies(c.Context, c.String(cinemaIDFlag.Name)), nil
		}),
	},
	{
		Name:     "upcoming",
		Usage:    "List movies releasing from tomorrow onward",
		Category: "movies",
		Flags:    withCommon(),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetUpcomingMovies(c.Context), nil
		}),
	},
	{
		Name:     "movie",
		Usage:    "Find a movie by id or exact title",
		Category: "movies",
		Flags:    withCommon(idFlag, titleFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetMovie(c.Context, showtimes.MovieQuery{
				ID:    c.String(idFlag.Name),
				Title: c.String(titleFlag.Name),
			})
		}),
	},
	{
		Name:     "cinemas",
		Usage:    "Find cinemas by id, name, address or location",
		Category: "cinemas",
		Flags:    withCommon(idFlag, nameFlag, cityFlag, zipFlag, stateFlag, latFlag, lonFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetCinemas(c.Context, showtimes.CinemaQuery{
				ID:       c.String(idFlag.Name),
				Name:     c.String(nameFlag.Name),
				City:     c.String(cityFlag.Name),
				ZipCode:  c.String(zipFlag.Name),
				State:    c.String(stateFlag.Name),
				Location: location(c),
			}), nil
		}),
	},
	{
		Name:     "showtimes",
		Usage:    "Find showtimes for a movie, a cinema, a location or a date range",
		Category: "showtimes",
		Flags: withCommon(idFlag, titleFlag, movieIDFlag, cinemaIDFlag, latFlag, lonFlag,
			fromFlag, toFlag, skipLookupsFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			q := showtimes.ShowtimeQuery{
				ID:                  c.String(idFlag.Name),
				Title:               c.String(titleFlag.Name),
				Location:            location(c),
				StartDay:            c.String(fromFlag.Name),
				EndDay:              c.String(toFlag.Name),
				SkipAdditionalCalls: c.Bool(skipLookupsFlag.Name),
			}
			if id := c.String(movieIDFlag.Name); id != "" {
				q.Movie = movieByID(c.Context, client, id)
			}
			if id := c.String(cinemaIDFlag.Name); id != "" {
				q.Cinema = core.NewCinema(core.Object{"id": id})
			}
			return client.GetShowtimes(c.Context, q)
		}),
	},
	{
		Name:     "chains",
		Usage:    "Find cinema chains by id or name",
		Category: "cinemas",
		Flags:    withCommon(idFlag, nameFlag, countryFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetChains(c.Context, showtimes.ChainQuery{
				ID:           c.String(idFlag.Name),
				Name:         c.String(nameFlag.Name),
				CountryCodes: c.StringSlice(countryFlag.Name),
			}), nil
		}),
	},
	{
		Name:     "genres",
		Usage:    "List genres, or find one by id or name",
		Category: "movies",
		Flags:    withCommon(idFlag, nameFlag),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetGenres(c.Context, showtimes.GenreQuery{
				ID:   c.String(idFlag.Name),
				Name: c.String(nameFlag.Name),
			}), nil
		}),
	},
	{
		Name:     "countries",
		Usage:    "List the countries the API covers",
		Category: "reference",
		Flags:    withCommon(),
		Action: run(func(c *cli.Context, client *showtimes.Client) (any, error) {
			return client.GetCountries(c.Context), nil
		}),
	},
}

// movieByID falls back to a bare movie carrying only the id when the lookup
// comes back empty, so the showtime query can still filter by it.
func movieByID(ctx context.Context, client *showtimes.Client, id string) *core.Movie {
	movies, err := client.GetMovie(ctx, showtimes.MovieQuery{ID: id})
	if err == nil && len(movies) > 0 {
		return movies[0]
	}
	return core.NewMovie(core.Object{"id": id})
}

func NewApp() *cli.App {
	return &cli.App{
		Name:     "showtimes",
		Usage:    "Look up movies, cinemas, showtimes and chains from the International Showtimes API",
		Commands: Lookups,
	}
}

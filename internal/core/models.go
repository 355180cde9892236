package core

type Genre struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	Data Object  `json:"-"`
}

type Trailer struct {
	Language *string  `json:"language,omitempty"`
	Official *bool    `json:"official,omitempty"`
	Files    []Object `json:"files,omitempty"`
	Data     Object   `json:"-"`
}

type Rating struct {
	Value *float64 `json:"value,omitempty"`
	Votes *int64   `json:"votes,omitempty"`
	Data  Object   `json:"-"`
}

type Ratings struct {
	IMDb           *Rating `json:"imdb,omitempty"`
	TMDb           *Rating `json:"tmdb,omitempty"`
	RottenTomatoes *Rating `json:"rottenTomatoes,omitempty"`
	Data           Object  `json:"-"`
}

type ReleaseDate struct {
	Locale *string `json:"locale,omitempty"`
	Region *string `json:"region,omitempty"`
	Date   *string `json:"date,omitempty"`
	Data   Object  `json:"-"`
}

// ReleaseDates maps a locale to its release dates in response order.
type ReleaseDates map[string][]*ReleaseDate

type Image struct {
	URL  *string `json:"url,omitempty"`
	Data any     `json:"-"`
}

type Person struct {
	ID        *string `json:"id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Image     *Image  `json:"image,omitempty"`
	Job       *string `json:"job,omitempty"`
	Character *string `json:"character,omitempty"`
	Data      Object  `json:"-"`
}

type Country struct {
	ISOCode   *string `json:"isoCode,omitempty"`
	Name      *string `json:"name,omitempty"`
	APIAccess *bool   `json:"apiAccess,omitempty"`
	Data      Object  `json:"-"`
}

type Movie struct {
	ID                  *string           `json:"id,omitempty"`
	Slug                *string           `json:"slug,omitempty"`
	Title               *string           `json:"title,omitempty"`
	OriginalTitle       *string           `json:"originalTitle,omitempty"`
	OriginalLanguage    *string           `json:"originalLanguage,omitempty"`
	Summary             *string           `json:"summary,omitempty"`
	Poster              *Image            `json:"poster,omitempty"`
	PosterThumbnail     *Image            `json:"posterThumbnail,omitempty"`
	SceneImages         []*Image          `json:"sceneImages,omitempty"`
	Runtime             *int64            `json:"runtime,omitempty"`
	Genres              []*Genre          `json:"genres,omitempty"`
	Trailers            []*Trailer        `json:"trailers,omitempty"`
	Ratings             *Ratings          `json:"ratings,omitempty"`
	AgeRestrictions     map[string]string `json:"ageRestrictions,omitempty"`
	ReleaseDates        ReleaseDates      `json:"releaseDates,omitempty"`
	Website             *string           `json:"website,omitempty"`
	ProductionCompanies []string          `json:"productionCompanies,omitempty"`
	Keywords            []string          `json:"keywords,omitempty"`
	IMDbID              *string           `json:"imdbId,omitempty"`
	TMDbID              *string           `json:"tmdbId,omitempty"`
	RentrakID           *string           `json:"rentrakId,omitempty"`
	Cast                []*Person         `json:"cast,omitempty"`
	Crew                []*Person         `json:"crew,omitempty"`
	Data                Object            `json:"-"`
}

type Cinema struct {
	ID           *string  `json:"id,omitempty"`
	Slug         *string  `json:"slug,omitempty"`
	Name         *string  `json:"name,omitempty"`
	ChainID      *string  `json:"chainId,omitempty"`
	CityID       *string  `json:"cityId,omitempty"`
	PhoneNumber  *string  `json:"phoneNumber,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Website      *string  `json:"website,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lon          *float64 `json:"lon,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Street       *string  `json:"street,omitempty"`
	StreetNumber *string  `json:"streetNumber,omitempty"`
	ZipCode      *string  `json:"zipCode,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	StateAbbr    *string  `json:"stateAbbr,omitempty"`
	Country      *string  `json:"country,omitempty"`
	CountryCode  *string  `json:"countryCode,omitempty"`
	BookingType  *string  `json:"bookingType,omitempty"`
	Data         Object   `json:"-"`
}

// Showtime references one movie and one cinema by id. Movie and Cinema are
// shared links to cache-resident instances and stay nil until resolved.
type Showtime struct {
	ID               *string `json:"id,omitempty"`
	CinemaID         *string `json:"cinemaId,omitempty"`
	Cinema           *Cinema `json:"cinema,omitempty"`
	MovieID          *string `json:"movieId,omitempty"`
	Movie            *Movie  `json:"movie,omitempty"`
	StartTime        *string `json:"startTime,omitempty"`
	Auditorium       *string `json:"auditorium,omitempty"`
	Is3D             *bool   `json:"is3d,omitempty"`
	IsIMAX           *bool   `json:"isImax,omitempty"`
	Language         *string `json:"language,omitempty"`
	SubtitleLanguage *string `json:"subtitleLanguage,omitempty"`
	CinemaMovieTitle *string `json:"cinemaMovieTitle,omitempty"`
	BookingType      *string `json:"bookingType,omitempty"`
	BookingLink      *string `json:"bookingLink,omitempty"`
	Data             Object  `json:"-"`
}

type Chain struct {
	ID        *string  `json:"id,omitempty"`
	Name      *string  `json:"name,omitempty"`
	Websites  []string `json:"websites,omitempty"`
	Countries []string `json:"countries,omitempty"`
	Data      Object   `json:"-"`
}

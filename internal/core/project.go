package core

// Projection functions build entities from API objects. They never fail: a
// missing key leaves the matching field unset. Nested collections are only
// projected when the parent key carries a non-empty value.

func NewGenre(data Object) *Genre {
	return &Genre{
		ID:   data.String("id"),
		Name: data.String("name"),
		Data: data,
	}
}

func NewTrailer(data Object) *Trailer {
	return &Trailer{
		Language: data.String("language"),
		Official: data.Bool("is_official"),
		Files:    data.Objects("trailer_files"),
		Data:     data,
	}
}

// NewRating returns nil for a nil object so that an absent sub-rating stays
// unset rather than becoming an empty Rating.
func NewRating(data Object) *Rating {
	if data == nil {
		return nil
	}
	return &Rating{
		Value: data.Float("value"),
		Votes: data.Int("vote_count"),
		Data:  data,
	}
}

func NewRatings(data Object) *Ratings {
	return &Ratings{
		IMDb:           NewRating(data.Object("imdb")),
		TMDb:           NewRating(data.Object("tmdb")),
		RottenTomatoes: NewRating(data.Object("rotten_tomatoes")),
		Data:           data,
	}
}

func NewReleaseDate(data Object) *ReleaseDate {
	return &ReleaseDate{
		Locale: data.String("locale"),
		Region: data.String("region"),
		Date:   data.String("date"),
		Data:   data,
	}
}

func NewReleaseDates(data Object) ReleaseDates {
	out := make(ReleaseDates, len(data))
	for locale := range data {
		items := data.Objects(locale)
		dates := make([]*ReleaseDate, 0, len(items))
		for _, item := range items {
			dates = append(dates, NewReleaseDate(item))
		}
		out[locale] = dates
	}
	return out
}

// NewImage accepts either a bare URL or an image object. Objects expose
// their "url", falling back to the first entry of "image_files".
func NewImage(data any) *Image {
	switch v := data.(type) {
	case nil:
		return nil
	case string:
		return &Image{URL: &v, Data: v}
	}
	img := &Image{Data: data}
	if obj := asObject(data); obj != nil {
		img.URL = obj.String("url")
		if img.URL == nil {
			if files := obj.Objects("image_files"); len(files) > 0 {
				img.URL = files[0].String("url")
			}
		}
	}
	return img
}

func NewPerson(data Object) *Person {
	return &Person{
		ID:        data.String("id"),
		Name:      data.String("name"),
		Image:     NewImage(data["image"]),
		Job:       data.String("job"),
		Character: data.String("character"),
		Data:      data,
	}
}

func NewCountry(data Object) *Country {
	return &Country{
		ISOCode:   data.String("iso_code"),
		Name:      data.String("name"),
		APIAccess: data.Bool("is_access_granted"),
		Data:      data,
	}
}

func NewMovie(data Object) *Movie {
	m := &Movie{
		ID:                  data.String("id"),
		Slug:                data.String("slug"),
		Title:               data.String("title"),
		OriginalTitle:       data.String("original_title"),
		OriginalLanguage:    data.String("original_language"),
		Summary:             data.String("synopsis"),
		Poster:              NewImage(data["poster_image"]),
		PosterThumbnail:     NewImage(data["poster_image_thumbnail"]),
		Runtime:             data.Int("runtime"),
		Website:             data.String("website"),
		ProductionCompanies: data.Strings("production_companies"),
		Keywords:            data.Strings("keywords"),
		IMDbID:              data.String("imdb_id"),
		TMDbID:              data.String("tmdb_id"),
		RentrakID:           data.String("rentrak_film_id"),
		Data:                data,
	}
	if items, ok := data["scene_images"].([]any); ok && len(items) > 0 {
		for _, item := range items {
			if img := NewImage(item); img != nil {
				m.SceneImages = append(m.SceneImages, img)
			}
		}
	}
	if data.truthy("genres") {
		for _, g := range data.Objects("genres") {
			m.Genres = append(m.Genres, NewGenre(g))
		}
	}
	if data.truthy("trailers") {
		for _, t := range data.Objects("trailers") {
			m.Trailers = append(m.Trailers, NewTrailer(t))
		}
	}
	if data.truthy("ratings") {
		m.Ratings = NewRatings(data.Object("ratings"))
	}
	if limits := data.Object("age_limits"); len(limits) > 0 {
		m.AgeRestrictions = make(map[string]string, len(limits))
		for region := range limits {
			if v := limits.String(region); v != nil {
				m.AgeRestrictions[region] = *v
			}
		}
	}
	if data.truthy("release_dates") {
		m.ReleaseDates = NewReleaseDates(data.Object("release_dates"))
	}
	if data.truthy("cast") {
		for _, p := range data.Objects("cast") {
			m.Cast = append(m.Cast, NewPerson(p))
		}
	}
	if data.truthy("crew") {
		for _, p := range data.Objects("crew") {
			m.Crew = append(m.Crew, NewPerson(p))
		}
	}
	return m
}

// NewCinema projects the cinema and, when "location" is present, its
// coordinates and address. The address projection runs whenever location is
// present, even if "address" itself is missing; every address field then
// stays unset.
func NewCinema(data Object) *Cinema {
	c := &Cinema{
		ID:          data.String("id"),
		Slug:        data.String("slug"),
		Name:        data.String("name"),
		ChainID:     data.String("chain_id"),
		CityID:      data.String("city_id"),
		PhoneNumber: data.String("telephone"),
		Email:       data.String("email"),
		Website:     data.String("website"),
		BookingType: data.String("booking_type"),
		Data:        data,
	}
	if !data.truthy("location") {
		return c
	}
	location := data.Object("location")
	c.Lat = location.Float("lat")
	c.Lon = location.Float("lon")

	address := location.Object("address")
	c.Address = address.String("display_text")
	c.Street = address.String("street")
	c.StreetNumber = address.String("house")
	c.ZipCode = address.String("zipcode")
	c.City = address.String("city")
	c.State = address.String("state")
	c.StateAbbr = address.String("state_abbr")
	c.Country = address.String("country")
	c.CountryCode = address.String("country_code")
	return c
}

// NewShowtime is pure: it records the movie and cinema ids but never fetches
// them. Cross-references are resolved in a separate step by the client.
func NewShowtime(data Object) *Showtime {
	return &Showtime{
		ID:               data.String("id"),
		CinemaID:         data.String("cinema_id"),
		MovieID:          data.String("movie_id"),
		StartTime:        data.String("start_at"),
		Auditorium:       data.String("auditorium"),
		Is3D:             data.Bool("is_3d"),
		IsIMAX:           data.Bool("is_imax"),
		Language:         data.String("language"),
		SubtitleLanguage: data.String("subtitle_language"),
		CinemaMovieTitle: data.String("cinema_movie_title"),
		BookingType:      data.String("booking_type"),
		BookingLink:      data.String("booking_link"),
		Data:             data,
	}
}

func NewChain(data Object) *Chain {
	return &Chain{
		ID:        data.String("id"),
		Name:      data.String("name"),
		Websites:  data.Strings("websites"),
		Countries: data.Strings("countries"),
		Data:      data,
	}
}

package entity

import (
	"time"
)

type WatchStatus string

const (
	WatchStatusDropped  WatchStatus = "Dropped"
	WatchStatusWatching WatchStatus = "Watching"
	WatchStatusPlanned  WatchStatus = "Planned"
	WatchStatusViewed   WatchStatus = "Viewed"
)

type MovieType string

const (
	MovieTypeMovie       MovieType = "Movie"
	MovieTypeSeries      MovieType = "Series"
	MovieTypeDocumentary MovieType = "Documentary"
	MovieTypeAnime       MovieType = "Anime"
	MovieTypeCartoon     MovieType = "Cartoon"
)

type Movie struct {
	Base
	Title       string      `db:"title"`
	Description *string     `db:"description"`
	ReleaseDate *time.Time  `db:"release_date"`
	Genre       *string     `db:"genre"`
	Rating      *float64    `db:"rating"`      // 0-10
	ChatRating  *float64    `db:"chat_rating"` // 0-10
	PosterURL   string      `db:"poster_url"`
	Status      WatchStatus `db:"status"`
	Type        MovieType   `db:"type"`
	Link        *string     `db:"link"`
}

// HasLink reports whether the movie has a non-empty watch link.
func (m *Movie) HasLink() bool {
	return m.Link != nil && *m.Link != ""
}

package request

// ListMoviesRequest carries the catalog listing parameters. Page size is
// fixed server-side; absent filters mean no constraint.
type ListMoviesRequest struct {
	Page          int
	Search        string
	Status        string
	Type          string
	Link          string // "", "available" or "unavailable"
	SortField     string
	SortDirection string
}

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=300"`
	Description *string  `json:"description,omitempty"`
	ReleaseDate *string  `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Genre       *string  `json:"genre,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	ChatRating  *float64 `json:"chatRating,omitempty" validate:"omitempty,min=0,max=10"`
	PosterURL   string   `json:"posterUrl" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=Dropped Watching Planned Viewed"`
	Type        string   `json:"type" validate:"required,oneof=Movie Series Documentary Anime Cartoon"`
	Link        *string  `json:"link,omitempty"`
}

type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Description *string  `json:"description,omitempty"`
	ReleaseDate *string  `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Genre       *string  `json:"genre,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	ChatRating  *float64 `json:"chatRating,omitempty" validate:"omitempty,min=0,max=10"`
	PosterURL   *string  `json:"posterUrl,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=Dropped Watching Planned Viewed"`
	Type        *string  `json:"type,omitempty" validate:"omitempty,oneof=Movie Series Documentary Anime Cartoon"`
	Link        *string  `json:"link,omitempty"`
}

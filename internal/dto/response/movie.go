package response

import (
	"time"

	"filmoteka/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ReleaseDate *string   `json:"releaseDate,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	ChatRating  *float64  `json:"chatRating,omitempty"`
	PosterURL   string    `json:"posterUrl"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Link        *string   `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		ReleaseDate: releaseDate,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		ChatRating:  movie.ChatRating,
		PosterURL:   movie.PosterURL,
		Status:      string(movie.Status),
		Type:        string(movie.Type),
		Link:        movie.Link,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

package response

import (
	"time"

	"filmoteka/internal/data/entity"
)

type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	MovieID   string        `json:"movieId"`
	User      CommentAuthor `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

type CommentAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func CommentToResponse(comment *entity.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:      comment.ID.String(),
		Content: comment.Content,
		MovieID: comment.MovieID.String(),
		User: CommentAuthor{
			ID:       comment.UserID.String(),
			Username: comment.AuthorUsername,
		},
		CreatedAt: comment.CreatedAt,
	}
}

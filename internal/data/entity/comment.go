package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	Base
	MovieID uuid.UUID `db:"movie_id"`
	UserID  uuid.UUID `db:"user_id"`
	Content string    `db:"content"` // trimmed, max 1000 chars
}

// CommentWithAuthor carries the author's username alongside the comment,
// populated by a join when listing comments for a movie.
type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"username"`
}

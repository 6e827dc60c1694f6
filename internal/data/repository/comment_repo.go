package repository

import (
	"context"
	"fmt"

	"filmoteka/internal/data/entity"
	"filmoteka/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CommentWithAuthor, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.CommentWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (id, movie_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.MovieID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("movie_id", comment.MovieID.String()),
			zap.String("user_id", comment.UserID.String()),
		)
		return fmt.Errorf("create comment for movie %s: %w", comment.MovieID.String(), err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.movie_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1
	`

	var comment entity.CommentWithAuthor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.MovieID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.AuthorUsername,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return nil, fmt.Errorf("find comment by ID %s: %w", id.String(), err)
	}

	return &comment, nil
}

// FindByMovieID returns all comments for a movie, newest first.
func (r *commentRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.movie_id, c.user_id, c.content, c.created_at, c.updated_at,
		       u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.movie_id = $1
		ORDER BY c.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find comments by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find comments for movie %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var comments []*entity.CommentWithAuthor
	for rows.Next() {
		var comment entity.CommentWithAuthor
		err := rows.Scan(
			&comment.ID,
			&comment.MovieID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.AuthorUsername,
		)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.String("comment_id", id.String()),
		)
		return fmt.Errorf("delete comment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment not found")
	}

	r.log.Info("Comment deleted", zap.String("comment_id", id.String()))
	return nil
}

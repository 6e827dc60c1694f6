package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"
	"filmoteka/internal/dto/response"
	"filmoteka/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCommentLength = 1000

type CommentService interface {
	ListByMovie(ctx context.Context, movieID string) ([]response.CommentResponse, error)
	CreateComment(ctx context.Context, movieID string, userID uuid.UUID, content string) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID string, userID uuid.UUID, role string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) ListByMovie(ctx context.Context, movieID string) ([]response.CommentResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	comments, err := s.repo.Comment.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to list comments",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("list comments: %w", err)
	}

	responses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		responses[i] = response.CommentToResponse(comment)
	}

	return responses, nil
}

func (s *commentService) CreateComment(ctx context.Context, movieID string, userID uuid.UUID, content string) (*response.CommentResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("validation failed: comment content is required")
	}
	if len([]rune(content)) > maxCommentLength {
		return nil, fmt.Errorf("validation failed: comment cannot be longer than %d characters", maxCommentLength)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	now := time.Now()
	comment := &entity.Comment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID: id,
		UserID:  userID,
		Content: content,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("movie_id", movieID),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create comment: %w", err)
	}

	username, _ := utils.GetUsernameFromContext(ctx)

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("movie_id", movieID),
	)

	resp := response.CommentToResponse(&entity.CommentWithAuthor{
		Comment:        *comment,
		AuthorUsername: username,
	})
	return &resp, nil
}

// DeleteComment removes a comment on behalf of its author or an admin.
// The existence check runs first, so a missing comment reports not-found
// to authors and strangers alike.
func (s *commentService) DeleteComment(ctx context.Context, commentID string, userID uuid.UUID, role string) error {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return fmt.Errorf("invalid comment id: %w", err)
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return fmt.Errorf("comment not found")
	}

	isAdmin := role == string(entity.RoleAdmin)
	isAuthor := comment.UserID == userID
	if !isAdmin && !isAuthor {
		s.log.Warn("Unauthorized comment delete attempt",
			zap.String("comment_id", commentID),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("not authorized to delete this comment")
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	return nil
}

package usecase

import (
	"context"
	"strings"
	"testing"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentFixture() (*fakeMovieRepo, *fakeCommentRepo, CommentService) {
	movies := newFakeMovieRepo()
	comments := newFakeCommentRepo()
	repo := &repository.Repository{Movie: movies, Comment: comments}
	return movies, comments, NewCommentService(repo, zap.NewNop())
}

func TestCreateComment_TrimsContent(t *testing.T) {
	movies, comments, svc := newCommentFixture()

	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}}
	movies.movies[movie.ID] = movie

	resp, err := svc.CreateComment(context.Background(), movie.ID.String(), uuid.New(), "  great movie  ")

	require.NoError(t, err)
	require.NotNil(t, comments.created)
	assert.Equal(t, "great movie", comments.created.Content)
	assert.Equal(t, "great movie", resp.Content)
}

func TestCreateComment_RejectsEmptyContent(t *testing.T) {
	_, comments, svc := newCommentFixture()

	_, err := svc.CreateComment(context.Background(), uuid.NewString(), uuid.New(), "   ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Nil(t, comments.created)
}

func TestCreateComment_RejectsOverlongContent(t *testing.T) {
	movies, _, svc := newCommentFixture()

	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}}
	movies.movies[movie.ID] = movie

	_, err := svc.CreateComment(context.Background(), movie.ID.String(), uuid.New(), strings.Repeat("x", 1001))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateComment_CountsRunesNotBytes(t *testing.T) {
	movies, comments, svc := newCommentFixture()

	movie := &entity.Movie{Base: entity.Base{ID: uuid.New()}}
	movies.movies[movie.ID] = movie

	// 1000 multibyte characters are within the limit.
	content := strings.Repeat("ж", 1000)
	_, err := svc.CreateComment(context.Background(), movie.ID.String(), uuid.New(), content)

	require.NoError(t, err)
	assert.Equal(t, content, comments.created.Content)
}

func TestCreateComment_MovieMustExist(t *testing.T) {
	_, _, svc := newCommentFixture()

	_, err := svc.CreateComment(context.Background(), uuid.NewString(), uuid.New(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "movie not found")
}

func TestDeleteComment_AuthorMayDelete(t *testing.T) {
	_, comments, svc := newCommentFixture()

	author := uuid.New()
	comment := &entity.CommentWithAuthor{
		Comment: entity.Comment{
			Base:   entity.Base{ID: uuid.New()},
			UserID: author,
		},
	}
	comments.byID[comment.ID] = comment

	err := svc.DeleteComment(context.Background(), comment.ID.String(), author, "user")

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{comment.ID}, comments.deleted)
}

func TestDeleteComment_AdminMayDeleteAny(t *testing.T) {
	_, comments, svc := newCommentFixture()

	comment := &entity.CommentWithAuthor{
		Comment: entity.Comment{
			Base:   entity.Base{ID: uuid.New()},
			UserID: uuid.New(),
		},
	}
	comments.byID[comment.ID] = comment

	err := svc.DeleteComment(context.Background(), comment.ID.String(), uuid.New(), "admin")

	require.NoError(t, err)
	assert.Len(t, comments.deleted, 1)
}

func TestDeleteComment_StrangerIsForbidden(t *testing.T) {
	_, comments, svc := newCommentFixture()

	comment := &entity.CommentWithAuthor{
		Comment: entity.Comment{
			Base:   entity.Base{ID: uuid.New()},
			UserID: uuid.New(),
		},
	}
	comments.byID[comment.ID] = comment

	err := svc.DeleteComment(context.Background(), comment.ID.String(), uuid.New(), "user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authorized")
	assert.Empty(t, comments.deleted)
}

func TestDeleteComment_MissingReportsNotFound(t *testing.T) {
	_, _, svc := newCommentFixture()

	err := svc.DeleteComment(context.Background(), uuid.NewString(), uuid.New(), "admin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "comment not found")
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"
	"filmoteka/internal/dto/request"
	"filmoteka/internal/dto/response"
	"filmoteka/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Catalog pages are a fixed size; callers only pick the page number.
const moviePageSize = 24

type MovieService interface {
	ListMovies(ctx context.Context, req *request.ListMoviesRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, req *request.ListMoviesRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := repository.MovieFilter{
		Search: req.Search,
		Status: req.Status,
		Type:   req.Type,
	}

	link, ok := repository.ParseLinkFilter(req.Link)
	if !ok {
		s.log.Warn("Ignoring unrecognized link filter", zap.String("link", req.Link))
	}
	filter.Link = link

	sort := repository.MovieSort{
		Field:     req.SortField,
		Direction: req.SortDirection,
	}

	offset := utils.CalculateOffset(page, moviePageSize)

	// A page past the end comes back empty rather than failing.
	movies, err := s.repo.Movie.FindPage(ctx, filter, sort, offset, moviePageSize)
	if err != nil {
		s.log.Error("Failed to list movies",
			zap.Error(err),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("list movies: %w", err)
	}

	// Same predicate as the page query, so the metadata stays consistent.
	total, err := s.repo.Movie.Count(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies listed",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", page),
	)

	return response.NewPaginatedResponse(movieResponses, page, moviePageSize, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		s.log.Warn("Invalid movie ID format", zap.String("movie_id", movieID))
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: releaseDate,
		Genre:       req.Genre,
		Rating:      req.Rating,
		ChatRating:  req.ChatRating,
		PosterURL:   req.PosterURL,
		Status:      entity.WatchStatus(req.Status),
		Type:        entity.MovieType(req.Type),
		Link:        req.Link,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie for update: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.ReleaseDate != nil {
		releaseDate, err := parseReleaseDate(req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		movie.ReleaseDate = releaseDate
	}
	if req.Genre != nil {
		movie.Genre = req.Genre
	}
	if req.Rating != nil {
		movie.Rating = req.Rating
	}
	if req.ChatRating != nil {
		movie.ChatRating = req.ChatRating
	}
	if req.PosterURL != nil {
		movie.PosterURL = *req.PosterURL
	}
	if req.Status != nil {
		movie.Status = entity.WatchStatus(*req.Status)
	}
	if req.Type != nil {
		movie.Type = entity.MovieType(*req.Type)
	}
	if req.Link != nil {
		movie.Link = req.Link
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie id: %w", err)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("delete movie: %w", err)
	}

	return nil
}

func parseReleaseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, fmt.Errorf("invalid release date: %w", err)
	}

	return &parsed, nil
}

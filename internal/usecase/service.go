package usecase

import (
	"filmoteka/internal/data/repository"
	"filmoteka/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Comment CommentService
	Payment PaymentService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Movie:   NewMovieService(repo, log),
		Comment: NewCommentService(repo, log),
		Payment: NewPaymentService(repo, config, log),
	}
}

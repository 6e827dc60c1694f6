package wire

import (
	"filmoteka/internal/adaptor"
	"filmoteka/pkg/middleware"
	"filmoteka/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/movies/{id}/comments", commentHandler.GetComments)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		r.Post("/api/movies/{id}/comments", commentHandler.CreateComment)
		r.Delete("/api/movies/{id}/comments/{commentId}", commentHandler.DeleteComment)
	})
}

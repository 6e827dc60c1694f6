package wire

import (
	"filmoteka/internal/adaptor"
	"filmoteka/pkg/middleware"
	"filmoteka/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Guests may donate too; a token only enriches the session metadata.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(config.JWT, log))

		r.Post("/api/payments/create-checkout-session", paymentHandler.CreateCheckoutSession)
	})

	// Authenticated by signature, not by bearer token.
	r.Post("/api/payments/webhook", paymentHandler.Webhook)

	r.Get("/api/payments/summary", paymentHandler.Summary)
}

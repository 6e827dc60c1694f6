package adaptor

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"filmoteka/internal/dto/request"
	"filmoteka/internal/usecase"
	"filmoteka/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
	"go.uber.org/zap"
)

// Stripe keeps webhook payloads well under this.
const maxWebhookBody = 65536

type PaymentHandler struct {
	service usecase.PaymentService
	config  *utils.Config
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, config *utils.Config, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateCheckoutSession handles POST /api/payments/create-checkout-session
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req request.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	checkout, err := h.service.CreateCheckout(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err, "create checkout session")
		return
	}

	utils.ResponseSuccess(w, "Checkout session created", checkout)
}

// Webhook handles POST /api/payments/webhook. The provider delivers
// events at-least-once and retries on any non-2xx, so after the payload
// is authenticated every outcome acknowledges with 200: a reconciliation
// fault is logged and left for the next redelivery or manual sweep
// rather than bounced back as a retry storm.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unable to read request body", nil)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.config.Stripe.WebhookSecret)
	if err != nil {
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Webhook signature verification failed", nil)
		return
	}

	ev, err := paymentEventFromStripe(event)
	if err != nil {
		h.log.Warn("Malformed webhook payload",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		utils.ResponseBadRequest(w, "Malformed webhook payload", nil)
		return
	}

	if ev != nil {
		if err := h.service.HandleEvent(r.Context(), ev); err != nil {
			h.log.Error("Failed to reconcile payment event",
				zap.String("type", string(event.Type)),
				zap.String("session_id", ev.SessionID),
				zap.Error(err),
			)
		}
	}

	utils.ResponseRaw(w, http.StatusOK, map[string]bool{"received": true})
}

// Summary handles GET /api/payments/summary
func (h *PaymentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err, "get payment summary")
		return
	}

	utils.ResponseRaw(w, http.StatusOK, summary)
}

// paymentEventFromStripe reduces a verified provider event to the fields
// the reconciler consumes. Returns (nil, nil) for event types the service
// does not track, which the caller acknowledges without action.
func paymentEventFromStripe(event stripe.Event) (*usecase.PaymentEvent, error) {
	kind := usecase.EventKind(event.Type)

	switch kind {
	case usecase.EventCheckoutCompleted, usecase.EventAsyncPaymentFailed, usecase.EventSessionExpired:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}

		ev := &usecase.PaymentEvent{
			Kind:      kind,
			SessionID: sess.ID,
			Amount:    sess.AmountTotal,
			Currency:  string(sess.Currency),
			Email:     sess.Metadata["userEmail"],
			UserID:    metadataUserID(sess.Metadata),
		}
		if ev.Email == "" && sess.CustomerDetails != nil {
			ev.Email = sess.CustomerDetails.Email
		}
		if sess.PaymentIntent != nil {
			ev.PaymentIntentID = sess.PaymentIntent.ID
		}
		return ev, nil

	case usecase.EventIntentSucceeded, usecase.EventIntentFailed:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, fmt.Errorf("decode payment intent: %w", err)
		}

		return &usecase.PaymentEvent{
			Kind:            kind,
			SessionID:       intent.Metadata["sessionId"],
			PaymentIntentID: intent.ID,
			Amount:          intent.Amount,
			Currency:        string(intent.Currency),
			Email:           intent.ReceiptEmail,
			UserID:          metadataUserID(intent.Metadata),
		}, nil

	default:
		return nil, nil
	}
}

func metadataUserID(metadata map[string]string) *uuid.UUID {
	raw, ok := metadata["userId"]
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

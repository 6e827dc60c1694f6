package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"
	"filmoteka/internal/dto/request"
	"filmoteka/internal/dto/response"
	"filmoteka/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"go.uber.org/zap"
)

// Minimum charge in the smallest currency unit, mirrored by the provider.
const minPaymentAmount = 50

// EventKind identifies a provider notification. Values match the
// provider's event type strings so handler mapping stays mechanical.
type EventKind string

const (
	EventCheckoutCompleted  EventKind = "checkout.session.completed"
	EventIntentSucceeded    EventKind = "payment_intent.succeeded"
	EventIntentFailed       EventKind = "payment_intent.payment_failed"
	EventAsyncPaymentFailed EventKind = "checkout.session.async_payment_failed"
	EventSessionExpired     EventKind = "checkout.session.expired"
)

// eventTargets maps each recognized event kind to the payment status it
// drives the record into. Kinds outside this map are acknowledged and
// dropped.
var eventTargets = map[EventKind]entity.PaymentStatus{
	EventCheckoutCompleted:  entity.PaymentStatusSucceeded,
	EventIntentSucceeded:    entity.PaymentStatusSucceeded,
	EventIntentFailed:       entity.PaymentStatusFailed,
	EventAsyncPaymentFailed: entity.PaymentStatusFailed,
	EventSessionExpired:     entity.PaymentStatusCanceled,
}

// PaymentEvent is one verified provider notification, reduced to the
// fields the reconciler consumes. SessionID may be empty on intent-keyed
// events; PaymentIntentID may be empty on early session-keyed ones.
type PaymentEvent struct {
	Kind            EventKind
	SessionID       string
	PaymentIntentID string
	Amount          int64 // smallest currency unit
	Currency        string
	Email           string
	UserID          *uuid.UUID // from provider metadata; nil for guests
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error)
	HandleEvent(ctx context.Context, ev *PaymentEvent) error
	Summary(ctx context.Context) (*response.SummaryResponse, error)
}

type paymentService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewPaymentService(repo *repository.Repository, config *utils.Config, log *zap.Logger) PaymentService {
	stripe.Key = config.Stripe.SecretKey

	return &paymentService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, req *request.CheckoutRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Checkout validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Support this project"),
						Description: stripe.String("Thank you for supporting our project!"),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.config.App.BaseURL + "/support/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.config.App.BaseURL + "/support/cancel"),
	}

	// Attach the caller's identity when present so webhook events can be
	// linked back to the account; guests pay without it.
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		params.AddMetadata("userId", userID.String())
		if user, err := s.repo.User.FindByID(ctx, userID); err == nil && user != nil {
			params.AddMetadata("userEmail", user.Email)
			params.CustomerEmail = stripe.String(user.Email)
		}
	}

	checkout, err := session.New(params)
	if err != nil {
		s.log.Error("Failed to create checkout session", zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.log.Info("Checkout session created",
		zap.String("session_id", checkout.ID),
		zap.Int64("amount", req.Amount),
	)

	return &response.CheckoutResponse{URL: checkout.URL}, nil
}

// HandleEvent reconciles one provider notification against the payment
// record it correlates to. Delivery is at-least-once and may be out of
// order, so the whole path is an idempotent upsert keyed by session id.
func (s *paymentService) HandleEvent(ctx context.Context, ev *PaymentEvent) error {
	target, recognized := eventTargets[ev.Kind]
	if !recognized {
		s.log.Debug("Ignoring unhandled payment event", zap.String("kind", string(ev.Kind)))
		return nil
	}

	if ev.Amount < minPaymentAmount {
		return fmt.Errorf("invalid amount %d: minimum is %d", ev.Amount, minPaymentAmount)
	}

	sessionID := ev.SessionID
	if sessionID == "" {
		if ev.PaymentIntentID == "" {
			return fmt.Errorf("payment event carries no correlation key")
		}
		// Intent-keyed events may arrive without session metadata;
		// synthesize a stable key from the intent id so the upsert
		// still converges on one record.
		sessionID = syntheticSessionID(target, ev.PaymentIntentID)
	}

	payment, err := s.lookup(ctx, sessionID, ev.PaymentIntentID)
	if err != nil {
		return err
	}

	if payment != nil {
		return s.transition(ctx, payment, target, ev.PaymentIntentID)
	}

	err = s.materialize(ctx, ev, sessionID, target)
	if errors.Is(err, repository.ErrDuplicateSession) {
		// Lost an insert race against a concurrent delivery of the same
		// session; the record exists now, apply this event as an update.
		payment, lookupErr := s.lookup(ctx, sessionID, ev.PaymentIntentID)
		if lookupErr != nil {
			return lookupErr
		}
		if payment == nil {
			return fmt.Errorf("payment for session %s vanished after duplicate insert", sessionID)
		}
		return s.transition(ctx, payment, target, ev.PaymentIntentID)
	}

	return err
}

func (s *paymentService) Summary(ctx context.Context) (*response.SummaryResponse, error) {
	totalAmount, totalCount, err := s.repo.Payment.SummarizeSucceeded(ctx)
	if err != nil {
		s.log.Error("Failed to get payment summary", zap.Error(err))
		return nil, fmt.Errorf("payment summary: %w", err)
	}

	return &response.SummaryResponse{
		TotalAmount:          totalAmount,
		TotalAmountFormatted: fmt.Sprintf("%.2f", float64(totalAmount)/100),
		TotalCount:           totalCount,
		Currency:             "USD",
	}, nil
}

// lookup resolves a payment by either correlation key, session id first.
func (s *paymentService) lookup(ctx context.Context, sessionID, intentID string) (*entity.Payment, error) {
	payment, err := s.repo.Payment.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lookup payment by session: %w", err)
	}
	if payment != nil || intentID == "" {
		return payment, nil
	}

	payment, err = s.repo.Payment.FindByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, fmt.Errorf("lookup payment by intent: %w", err)
	}
	return payment, nil
}

func (s *paymentService) transition(ctx context.Context, payment *entity.Payment, target entity.PaymentStatus, intentID string) error {
	// Succeeded is terminal: late failure or expiry notifications for an
	// already-successful checkout are acknowledged but not applied.
	if payment.Status == entity.PaymentStatusSucceeded && target != entity.PaymentStatusSucceeded {
		s.log.Warn("Ignoring transition out of succeeded",
			zap.String("session_id", payment.SessionID),
			zap.String("target", string(target)),
		)
		return nil
	}

	var intentPtr *string
	if intentID != "" {
		intentPtr = &intentID
	}

	if err := s.repo.Payment.UpdateStatus(ctx, payment.ID, target, intentPtr); err != nil {
		return fmt.Errorf("apply payment status: %w", err)
	}

	s.log.Info("Payment status updated",
		zap.String("session_id", payment.SessionID),
		zap.String("status", string(target)),
	)

	return nil
}

// materialize creates the record directly in the event's target state;
// a missing record is equivalent to an implicit "created" payment.
func (s *paymentService) materialize(ctx context.Context, ev *PaymentEvent, sessionID string, target entity.PaymentStatus) error {
	currency := strings.ToLower(ev.Currency)
	if currency == "" {
		currency = "usd"
	}

	var email *string
	if ev.Email != "" {
		normalized := strings.ToLower(strings.TrimSpace(ev.Email))
		email = &normalized
	}

	var intentPtr *string
	if ev.PaymentIntentID != "" {
		intentID := ev.PaymentIntentID
		intentPtr = &intentID
	}

	now := time.Now()
	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          ev.UserID,
		Email:           email,
		Amount:          ev.Amount,
		Currency:        currency,
		Status:          target,
		SessionID:       sessionID,
		PaymentIntentID: intentPtr,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return err
	}

	s.log.Info("Payment recorded",
		zap.String("session_id", sessionID),
		zap.String("status", string(target)),
		zap.Int64("amount", ev.Amount),
	)

	return nil
}

func syntheticSessionID(target entity.PaymentStatus, intentID string) string {
	if target == entity.PaymentStatusFailed {
		return "failed_" + intentID
	}
	return "intent_" + intentID
}

package adaptor

import (
	"encoding/json"
	"testing"

	"filmoteka/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78"
)

func stripeEvent(t *testing.T, eventType string, object any) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(object)
	require.NoError(t, err)

	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestPaymentEventFromStripe_CheckoutCompleted(t *testing.T) {
	userID := uuid.New()
	event := stripeEvent(t, "checkout.session.completed", map[string]any{
		"id":           "cs_test_1",
		"amount_total": 2500,
		"currency":     "usd",
		"metadata": map[string]string{
			"userId":    userID.String(),
			"userEmail": "donor@example.com",
		},
		"payment_intent": map[string]any{"id": "pi_1"},
	})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, usecase.EventCheckoutCompleted, ev.Kind)
	assert.Equal(t, "cs_test_1", ev.SessionID)
	assert.Equal(t, "pi_1", ev.PaymentIntentID)
	assert.Equal(t, int64(2500), ev.Amount)
	assert.Equal(t, "usd", ev.Currency)
	assert.Equal(t, "donor@example.com", ev.Email)
	require.NotNil(t, ev.UserID)
	assert.Equal(t, userID, *ev.UserID)
}

func TestPaymentEventFromStripe_FallsBackToCustomerEmail(t *testing.T) {
	event := stripeEvent(t, "checkout.session.completed", map[string]any{
		"id":               "cs_test_1",
		"amount_total":     2500,
		"currency":         "usd",
		"customer_details": map[string]any{"email": "guest@example.com"},
	})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", ev.Email)
	assert.Nil(t, ev.UserID)
}

func TestPaymentEventFromStripe_IntentFailed(t *testing.T) {
	event := stripeEvent(t, "payment_intent.payment_failed", map[string]any{
		"id":            "pi_9",
		"amount":        2500,
		"currency":      "usd",
		"receipt_email": "donor@example.com",
		"metadata":      map[string]string{"sessionId": "cs_test_1"},
	})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, usecase.EventIntentFailed, ev.Kind)
	assert.Equal(t, "cs_test_1", ev.SessionID)
	assert.Equal(t, "pi_9", ev.PaymentIntentID)
	assert.Equal(t, "donor@example.com", ev.Email)
}

func TestPaymentEventFromStripe_IntentWithoutSessionMetadata(t *testing.T) {
	event := stripeEvent(t, "payment_intent.succeeded", map[string]any{
		"id":       "pi_9",
		"amount":   2500,
		"currency": "usd",
	})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	assert.Empty(t, ev.SessionID)
	assert.Equal(t, "pi_9", ev.PaymentIntentID)
}

func TestPaymentEventFromStripe_UnhandledTypeIsNil(t *testing.T) {
	event := stripeEvent(t, "invoice.paid", map[string]any{"id": "in_1"})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestPaymentEventFromStripe_MalformedUserIDIsDropped(t *testing.T) {
	event := stripeEvent(t, "checkout.session.completed", map[string]any{
		"id":           "cs_test_1",
		"amount_total": 2500,
		"currency":     "usd",
		"metadata":     map[string]string{"userId": "not-a-uuid"},
	})

	ev, err := paymentEventFromStripe(event)

	require.NoError(t, err)
	assert.Nil(t, ev.UserID)
}

package usecase

import (
	"context"
	"testing"

	"filmoteka/internal/data/entity"
	"filmoteka/internal/data/repository"
	"filmoteka/internal/dto/request"
	"filmoteka/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentFixture() (*fakePaymentRepo, PaymentService) {
	payments := newFakePaymentRepo()
	repo := &repository.Repository{
		User:    newFakeUserRepo(),
		Payment: payments,
	}
	svc := NewPaymentService(repo, &utils.Config{}, zap.NewNop())
	return payments, svc
}

func succeededEvent(sessionID, intentID string) *PaymentEvent {
	return &PaymentEvent{
		Kind:            EventCheckoutCompleted,
		SessionID:       sessionID,
		PaymentIntentID: intentID,
		Amount:          2500,
		Currency:        "USD",
		Email:           "Donor@Example.com ",
	}
}

func TestHandleEvent_UnknownKindIsIgnored(t *testing.T) {
	payments, svc := newPaymentFixture()

	err := svc.HandleEvent(context.Background(), &PaymentEvent{
		Kind:      EventKind("invoice.paid"),
		SessionID: "cs_1",
		Amount:    2500,
	})

	require.NoError(t, err)
	assert.Empty(t, payments.creates)
	assert.Empty(t, payments.updates)
}

func TestHandleEvent_RejectsAmountBelowMinimum(t *testing.T) {
	payments, svc := newPaymentFixture()

	ev := succeededEvent("cs_1", "pi_1")
	ev.Amount = 49

	err := svc.HandleEvent(context.Background(), ev)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
	assert.Empty(t, payments.creates)
}

func TestHandleEvent_RejectsMissingCorrelationKey(t *testing.T) {
	_, svc := newPaymentFixture()

	err := svc.HandleEvent(context.Background(), &PaymentEvent{
		Kind:   EventCheckoutCompleted,
		Amount: 2500,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no correlation key")
}

func TestHandleEvent_MaterializesMissingRecordInTargetState(t *testing.T) {
	payments, svc := newPaymentFixture()

	err := svc.HandleEvent(context.Background(), succeededEvent("cs_1", "pi_1"))

	require.NoError(t, err)
	require.Len(t, payments.creates, 1)

	created := payments.creates[0]
	assert.Equal(t, "cs_1", created.SessionID)
	assert.Equal(t, entity.PaymentStatusSucceeded, created.Status)
	assert.Equal(t, int64(2500), created.Amount)
	assert.Equal(t, "usd", created.Currency)
	require.NotNil(t, created.PaymentIntentID)
	assert.Equal(t, "pi_1", *created.PaymentIntentID)
	require.NotNil(t, created.Email)
	assert.Equal(t, "donor@example.com", *created.Email)
}

func TestHandleEvent_RedeliveryIsIdempotent(t *testing.T) {
	payments, svc := newPaymentFixture()
	ctx := context.Background()

	require.NoError(t, svc.HandleEvent(ctx, succeededEvent("cs_1", "pi_1")))
	require.NoError(t, svc.HandleEvent(ctx, succeededEvent("cs_1", "pi_1")))

	// One record; the redelivery lands as a same-state update.
	assert.Len(t, payments.creates, 1)
	require.Len(t, payments.updates, 1)
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.updates[0].status)
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.bySession["cs_1"].Status)
}

func TestHandleEvent_OutOfOrderFailureThenSuccess(t *testing.T) {
	payments, svc := newPaymentFixture()
	ctx := context.Background()

	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:            EventIntentFailed,
		SessionID:       "cs_1",
		PaymentIntentID: "pi_1",
		Amount:          2500,
		Currency:        "usd",
	}))
	require.Equal(t, entity.PaymentStatusFailed, payments.bySession["cs_1"].Status)

	require.NoError(t, svc.HandleEvent(ctx, succeededEvent("cs_1", "pi_1")))

	// The later success supersedes the earlier failure.
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.bySession["cs_1"].Status)
	assert.Len(t, payments.creates, 1)
}

func TestHandleEvent_SucceededIsTerminal(t *testing.T) {
	payments, svc := newPaymentFixture()
	ctx := context.Background()

	require.NoError(t, svc.HandleEvent(ctx, succeededEvent("cs_1", "pi_1")))

	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:            EventAsyncPaymentFailed,
		SessionID:       "cs_1",
		PaymentIntentID: "pi_1",
		Amount:          2500,
	}))
	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:      EventSessionExpired,
		SessionID: "cs_1",
		Amount:    2500,
	}))

	// Late failure and expiry notifications are acknowledged but never
	// applied over a success.
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.bySession["cs_1"].Status)
	assert.Empty(t, payments.updates)
}

func TestHandleEvent_IntentOnlyFailureGetsSyntheticSession(t *testing.T) {
	payments, svc := newPaymentFixture()

	err := svc.HandleEvent(context.Background(), &PaymentEvent{
		Kind:            EventIntentFailed,
		PaymentIntentID: "pi_9",
		Amount:          2500,
		Currency:        "usd",
	})

	require.NoError(t, err)
	require.Len(t, payments.creates, 1)
	assert.Equal(t, "failed_pi_9", payments.creates[0].SessionID)
	assert.Equal(t, entity.PaymentStatusFailed, payments.creates[0].Status)
}

func TestHandleEvent_IntentOnlySuccessGetsSyntheticSession(t *testing.T) {
	payments, svc := newPaymentFixture()

	err := svc.HandleEvent(context.Background(), &PaymentEvent{
		Kind:            EventIntentSucceeded,
		PaymentIntentID: "pi_9",
		Amount:          2500,
		Currency:        "usd",
	})

	require.NoError(t, err)
	require.Len(t, payments.creates, 1)
	assert.Equal(t, "intent_pi_9", payments.creates[0].SessionID)
}

func TestHandleEvent_FallsBackToIntentLookup(t *testing.T) {
	payments, svc := newPaymentFixture()
	ctx := context.Background()

	// Record created from the checkout session, carrying the intent id.
	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:            EventIntentFailed,
		SessionID:       "cs_1",
		PaymentIntentID: "pi_1",
		Amount:          2500,
	}))

	// A later intent event without session metadata must still converge
	// on the same record via the intent id.
	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:            EventIntentSucceeded,
		PaymentIntentID: "pi_1",
		Amount:          2500,
	}))

	assert.Len(t, payments.creates, 1)
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.bySession["cs_1"].Status)
}

func TestHandleEvent_InsertRaceRetriesAsUpdate(t *testing.T) {
	payments, svc := newPaymentFixture()

	// A concurrent delivery wins the insert between the miss and our
	// create; the duplicate error must convert this event into an update.
	rival := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		Amount:    2500,
		Currency:  "usd",
		Status:    entity.PaymentStatusCreated,
		SessionID: "cs_1",
	}
	payments.onCreate = func(*entity.Payment) error {
		payments.bySession["cs_1"] = rival
		return repository.ErrDuplicateSession
	}

	err := svc.HandleEvent(context.Background(), succeededEvent("cs_1", "pi_1"))

	require.NoError(t, err)
	assert.Empty(t, payments.creates)
	require.Len(t, payments.updates, 1)
	assert.Equal(t, rival.ID, payments.updates[0].id)
	assert.Equal(t, entity.PaymentStatusSucceeded, payments.updates[0].status)
}

func TestHandleEvent_UpdateBackfillsIntentID(t *testing.T) {
	payments, svc := newPaymentFixture()
	ctx := context.Background()

	require.NoError(t, svc.HandleEvent(ctx, &PaymentEvent{
		Kind:      EventSessionExpired,
		SessionID: "cs_1",
		Amount:    2500,
	}))
	require.Nil(t, payments.bySession["cs_1"].PaymentIntentID)

	require.NoError(t, svc.HandleEvent(ctx, succeededEvent("cs_1", "pi_1")))

	require.NotNil(t, payments.bySession["cs_1"].PaymentIntentID)
	assert.Equal(t, "pi_1", *payments.bySession["cs_1"].PaymentIntentID)
}

func TestSummary_FormatsWholeUnits(t *testing.T) {
	payments, svc := newPaymentFixture()
	payments.sumAmount = 123455
	payments.sumCount = 17

	summary, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(123455), summary.TotalAmount)
	assert.Equal(t, "1234.55", summary.TotalAmountFormatted)
	assert.Equal(t, int64(17), summary.TotalCount)
	assert.Equal(t, "USD", summary.Currency)
}

func TestSummary_EmptyLedger(t *testing.T) {
	_, svc := newPaymentFixture()

	summary, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalAmount)
	assert.Equal(t, "0.00", summary.TotalAmountFormatted)
	assert.Equal(t, int64(0), summary.TotalCount)
}

func TestCreateCheckout_RejectsAmountBelowMinimum(t *testing.T) {
	_, svc := newPaymentFixture()

	_, err := svc.CreateCheckout(context.Background(), &request.CheckoutRequest{Amount: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCreateCheckout_RejectsMissingAmount(t *testing.T) {
	_, svc := newPaymentFixture()

	_, err := svc.CreateCheckout(context.Background(), &request.CheckoutRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"filmoteka/internal/data/entity"
	"filmoteka/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicateSession is returned by Create when another writer already
// inserted a payment with the same session id. The reconciler treats it
// as "record exists" and retries as an update.
var ErrDuplicateSession = errors.New("payment with this session id already exists")

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Payment, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, paymentIntentID *string) error

	// SummarizeSucceeded returns the sum of amounts and the count of
	// payments in succeeded state, always freshly aggregated.
	SummarizeSucceeded(ctx context.Context) (totalAmount int64, totalCount int64, err error)
}

const paymentColumns = `id, user_id, email, amount, currency, status, session_id,
	       payment_intent_id, created_at, updated_at`

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, email, amount, currency, status,
		                      session_id, payment_intent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.UserID,
		payment.Email,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.SessionID,
		payment.PaymentIntentID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSession
		}
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("session_id", payment.SessionID),
		)
		return fmt.Errorf("create payment for session %s: %w", payment.SessionID, err)
	}

	return nil
}

func (r *paymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE session_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, sessionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find payment by session ID %s: %w", sessionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_intent_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, paymentIntentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by payment intent ID",
			zap.Error(err),
			zap.String("payment_intent_id", paymentIntentID),
		)
		return nil, fmt.Errorf("find payment by intent ID %s: %w", paymentIntentID, err)
	}

	return payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, paymentIntentID *string) error {
	query := `
		UPDATE payments
		SET status = $2,
		    payment_intent_id = COALESCE($3, payment_intent_id),
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, status, paymentIntentID)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", id.String())
	}

	return nil
}

func (r *paymentRepository) SummarizeSucceeded(ctx context.Context) (int64, int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM payments
		WHERE status = $1
	`

	var totalAmount, totalCount int64
	err := r.db.QueryRow(ctx, query, entity.PaymentStatusSucceeded).Scan(&totalAmount, &totalCount)
	if err != nil {
		r.log.Error("Failed to summarize payments", zap.Error(err))
		return 0, 0, fmt.Errorf("summarize payments: %w", err)
	}

	return totalAmount, totalCount, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Email,
		&payment.Amount,
		&payment.Currency,
		&payment.Status,
		&payment.SessionID,
		&payment.PaymentIntentID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

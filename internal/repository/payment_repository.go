package repository

import (
	"context"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository handles payment records. Payments are append-only; the
// only mutation here is the transactional cleanup of matching selections.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Record inserts the payment and deletes every selection the student holds
// for that class, in a single transaction. A crash can no longer leave a
// paid-for selection behind. Returns the number of selections removed.
func (r *PaymentRepository) Record(ctx context.Context, p *model.Payment) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO payments (student_email, class_id, class_name, amount, currency, transaction_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, paid_at`,
		p.StudentEmail, p.ClassID, p.ClassName, p.Amount, p.Currency, p.TransactionID,
	).Scan(&p.ID, &p.PaidAt)
	if err != nil {
		return 0, err
	}

	// Filter-based delete: clears duplicate and stale selections for the
	// same class, not just the one the student paid from.
	tag, err := tx.Exec(ctx,
		`DELETE FROM selections WHERE student_email = $1 AND class_id = $2`,
		p.StudentEmail, p.ClassID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListByStudent retrieves a student's payments, most recent first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, email string) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_email, class_id, class_name, amount, currency, transaction_id, paid_at
		 FROM payments WHERE student_email = $1 ORDER BY paid_at DESC, id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentEmail, &p.ClassID, &p.ClassName,
			&p.Amount, &p.Currency, &p.TransactionID, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

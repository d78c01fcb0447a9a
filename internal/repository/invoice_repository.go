package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

// InvoiceRepository persists commission invoices raised on hiring.
type InvoiceRepository struct {
	db *sqlx.DB
}

// NewInvoiceRepository constructs the repository.
func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create stores a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.CommissionInvoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceUnpaid
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now().UTC()
	}
	const query = `INSERT INTO commission_invoices (id, job_id, teacher_id, amount, status, issued_at)
		VALUES (:id, :job_id, :teacher_id, :amount, :status, :issued_at)`
	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// GetByID returns an invoice by identifier.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.CommissionInvoice, error) {
	const query = `SELECT id, job_id, teacher_id, amount, status, issued_at, paid_at FROM commission_invoices WHERE id = $1 LIMIT 1`
	var inv models.CommissionInvoice
	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find invoice by id: %w", err)
	}
	return &inv, nil
}

// ListForUser returns invoices visible to a user: their own (as the
// hired teacher) or those raised on jobs they own (as the guardian).
func (r *InvoiceRepository) ListForUser(ctx context.Context, userID string) ([]models.CommissionInvoice, error) {
	const query = `SELECT i.id, i.job_id, i.teacher_id, i.amount, i.status, i.issued_at, i.paid_at
		FROM commission_invoices i
		JOIN jobs j ON j.id = i.job_id
		WHERE i.teacher_id = $1 OR j.guardian_id = $1
		ORDER BY i.issued_at DESC`
	var invoices []models.CommissionInvoice
	if err := r.db.SelectContext(ctx, &invoices, query, userID); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// MarkPaid settles an unpaid invoice. The update is a compare-and-swap
// on UNPAID, so a double payment settles exactly once and the second
// caller sees false.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE commission_invoices SET status = 'PAID', paid_at = $2 WHERE id = $1 AND status = 'UNPAID'`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("mark invoice paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark invoice paid rows affected: %w", err)
	}
	return affected == 1, nil
}

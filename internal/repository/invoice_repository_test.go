package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
)

func TestInvoiceGetByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInvoiceRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM commission_invoices WHERE id").
		WithArgs("inv1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "teacher_id", "amount", "status", "issued_at", "paid_at"}).
			AddRow("inv1", "j1", "t1", 4000.0, string(models.InvoiceUnpaid), now, nil))

	inv, err := repo.GetByID(context.Background(), "inv1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	assert.Nil(t, inv.PaidAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceMarkPaidSettles(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInvoiceRepository(db)

	mock.ExpectExec("UPDATE commission_invoices SET status = 'PAID'").
		WillReturnResult(sqlmock.NewResult(0, 1))

	paid, err := repo.MarkPaid(context.Background(), "inv1")
	require.NoError(t, err)
	assert.True(t, paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceMarkPaidAlreadyPaid(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInvoiceRepository(db)

	// Compare-and-swap misses: the invoice is no longer UNPAID.
	mock.ExpectExec("UPDATE commission_invoices SET status = 'PAID'").
		WillReturnResult(sqlmock.NewResult(0, 0))

	paid, err := repo.MarkPaid(context.Background(), "inv1")
	require.NoError(t, err)
	assert.False(t, paid)
}

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type fakeInvoiceStore struct {
	invoice *models.CommissionInvoice
	list    []models.CommissionInvoice
}

func (f *fakeInvoiceStore) GetByID(ctx context.Context, id string) (*models.CommissionInvoice, error) {
	if f.invoice == nil || f.invoice.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.invoice, nil
}

func (f *fakeInvoiceStore) ListForUser(ctx context.Context, userID string) ([]models.CommissionInvoice, error) {
	return f.list, nil
}

func (f *fakeInvoiceStore) MarkPaid(ctx context.Context, id string) (bool, error) {
	if f.invoice == nil || f.invoice.ID != id || f.invoice.Status != models.InvoiceUnpaid {
		return false, nil
	}
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	f.invoice.Status = models.InvoicePaid
	f.invoice.PaidAt = &now
	return true, nil
}

type fakeInvoiceJobRepo struct {
	job *models.Job
}

func (f *fakeInvoiceJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if f.job == nil || f.job.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.job, nil
}

type fakeInvoiceUserRepo struct {
	user *models.User
}

func (f *fakeInvoiceUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return f.user, nil
}

func newInvoiceFixture() *InvoiceService {
	invoices := &fakeInvoiceStore{invoice: &models.CommissionInvoice{
		ID:        "inv1",
		JobID:     "j1",
		TeacherID: "t1",
		Amount:    4000,
		Status:    models.InvoiceUnpaid,
		IssuedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	jobsRepo := &fakeInvoiceJobRepo{job: &models.Job{
		ID:         "j1",
		GuardianID: "g1",
		Title:      "Physics tutor",
		Subject:    "Physics",
		Location:   "Dhanmondi",
		City:       "Dhaka",
		Salary:     10000,
		Status:     models.JobFilled,
	}}
	users := &fakeInvoiceUserRepo{user: &models.User{ID: "t1", FullName: "Teacher One"}}
	return NewInvoiceService(invoices, jobsRepo, users, nil)
}

func TestInvoiceRenderPDFForTeacher(t *testing.T) {
	svc := newInvoiceFixture()

	pdfBytes, err := svc.RenderPDF(context.Background(), "t1", "inv1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestInvoiceRenderPDFForGuardian(t *testing.T) {
	svc := newInvoiceFixture()

	pdfBytes, err := svc.RenderPDF(context.Background(), "g1", "inv1")
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}

func TestInvoiceRenderPDFMasksStranger(t *testing.T) {
	svc := newInvoiceFixture()

	_, err := svc.RenderPDF(context.Background(), "someone-else", "inv1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestInvoiceRenderPDFMissing(t *testing.T) {
	svc := newInvoiceFixture()

	_, err := svc.RenderPDF(context.Background(), "t1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestInvoicePayByTeacher(t *testing.T) {
	svc := newInvoiceFixture()

	inv, err := svc.Pay(context.Background(), "t1", "inv1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
}

func TestInvoicePayTwiceConflicts(t *testing.T) {
	svc := newInvoiceFixture()

	_, err := svc.Pay(context.Background(), "t1", "inv1")
	require.NoError(t, err)

	_, err = svc.Pay(context.Background(), "t1", "inv1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestInvoicePayByGuardianForbidden(t *testing.T) {
	svc := newInvoiceFixture()

	_, err := svc.Pay(context.Background(), "g1", "inv1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestInvoicePayMasksStranger(t *testing.T) {
	svc := newInvoiceFixture()

	_, err := svc.Pay(context.Background(), "someone-else", "inv1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

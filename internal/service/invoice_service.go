package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
	"github.com/tutorhubbd/tutorhub-api/pkg/export"
)

type invoiceRepo interface {
	GetByID(ctx context.Context, id string) (*models.CommissionInvoice, error)
	ListForUser(ctx context.Context, userID string) ([]models.CommissionInvoice, error)
	MarkPaid(ctx context.Context, id string) (bool, error)
}

type invoiceJobRepo interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

type invoiceUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// InvoiceService reads commission invoices and renders them as PDF.
type InvoiceService struct {
	invoices invoiceRepo
	jobs     invoiceJobRepo
	users    invoiceUserRepo
	logger   *zap.Logger
}

// NewInvoiceService constructs an InvoiceService instance.
func NewInvoiceService(invoices invoiceRepo, jobsRepo invoiceJobRepo, users invoiceUserRepo, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{invoices: invoices, jobs: jobsRepo, users: users, logger: logger}
}

// ListMine returns the invoices the caller can see: those raised against
// them as the hired teacher, or on jobs they own as the guardian.
func (s *InvoiceService) ListMine(ctx context.Context, userID string) ([]models.CommissionInvoice, error) {
	invoices, err := s.invoices.ListForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list invoices")
	}
	return invoices, nil
}

// RenderPDF produces the printable invoice. Callers outside the two
// parties get the same not-found answer as a missing invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, userID, invoiceID string) ([]byte, error) {
	inv, job, err := s.load(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	doc := export.InvoiceDocument{
		InvoiceID: inv.ID,
		JobTitle:  job.Title,
		Subject:   job.Subject,
		Location:  job.Location + ", " + job.City,
		Salary:    job.Salary,
		Amount:    inv.Amount,
		Status:    string(inv.Status),
		IssuedAt:  inv.IssuedAt.Format("2006-01-02"),
	}
	if teacher, err := s.users.FindByID(ctx, inv.TeacherID); err != nil {
		s.logger.Warn("failed to load teacher for invoice pdf", zap.Error(err), zap.String("invoice_id", inv.ID))
	} else {
		doc.TeacherName = teacher.FullName
	}

	pdfBytes, err := export.RenderInvoice(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render invoice")
	}
	return pdfBytes, nil
}

// Pay settles the invoice. Only the invoiced teacher can pay; the
// guardian sees the invoice but is not a payer for it. Outsiders get
// the same not-found answer as a missing invoice.
func (s *InvoiceService) Pay(ctx context.Context, userID, invoiceID string) (*models.CommissionInvoice, error) {
	inv, _, err := s.load(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.TeacherID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the invoiced teacher can pay this invoice")
	}

	paid, err := s.invoices.MarkPaid(ctx, inv.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to settle invoice")
	}
	if !paid {
		return nil, appErrors.Clone(appErrors.ErrConflict, "invoice is already paid")
	}

	// Re-read so the caller sees the stored settlement timestamp.
	inv, err = s.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload invoice")
	}

	s.logger.Info("invoice settled", zap.String("invoice_id", inv.ID), zap.String("teacher_id", inv.TeacherID))
	return inv, nil
}

func (s *InvoiceService) load(ctx context.Context, userID, invoiceID string) (*models.CommissionInvoice, *models.Job, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "invoice not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load invoice")
	}
	job, err := s.jobs.GetByID(ctx, inv.JobID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load invoice job")
	}
	if inv.TeacherID != userID && job.GuardianID != userID {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "invoice not found")
	}
	return inv, job, nil
}

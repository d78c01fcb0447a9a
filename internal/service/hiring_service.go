package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/internal/models"
	appErrors "github.com/tutorhubbd/tutorhub-api/pkg/errors"
)

type hiringJobRepo interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
	ConfirmHiring(ctx context.Context, jobID, teacherID string) (bool, error)
}

type hiringApplicationRepo interface {
	FindByJobAndTeacher(ctx context.Context, jobID, teacherID string) (*models.Application, error)
	ListDetailsByJob(ctx context.Context, jobID string) ([]models.ApplicantDetail, error)
}

type hiringUserRepo interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type invoiceCreator interface {
	Create(ctx context.Context, inv *models.CommissionInvoice) error
}

type notificationCreator interface {
	Create(ctx context.Context, n *models.Notification) error
}

type hiringMailer interface {
	EnqueueHired(msg HiredEmail)
	EnqueueRejected(msg RejectedEmail)
}

// HiringService closes jobs. It is the only path that moves a job from
// OPEN to FILLED, and it settles every application for the job in the
// same transaction.
type HiringService struct {
	jobs           hiringJobRepo
	apps           hiringApplicationRepo
	users          hiringUserRepo
	invoices       invoiceCreator
	notifications  notificationCreator
	mail           hiringMailer
	logger         *zap.Logger
	commissionRate float64
}

// NewHiringService constructs a HiringService instance.
func NewHiringService(jobsRepo hiringJobRepo, apps hiringApplicationRepo, users hiringUserRepo, invoices invoiceCreator, notifications notificationCreator, mail hiringMailer, logger *zap.Logger, commissionRate float64) *HiringService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HiringService{
		jobs:           jobsRepo,
		apps:           apps,
		users:          users,
		invoices:       invoices,
		notifications:  notifications,
		mail:           mail,
		logger:         logger,
		commissionRate: commissionRate,
	}
}

// ConfirmHiring fills a job with the selected applicant. Callers who do
// not own the job get the same not-found answer as callers naming a job
// that does not exist, so the endpoint never confirms a foreign job's
// existence. Concurrent confirmations are settled by a compare-and-swap
// in the store: exactly one wins, the rest see the job as no longer open.
func (s *HiringService) ConfirmHiring(ctx context.Context, guardianID, jobID, teacherID string) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if job.GuardianID != guardianID {
		return nil, appErrors.ErrJobNotFound
	}
	if job.Status != models.JobOpen {
		return nil, appErrors.ErrJobNotOpen
	}

	if _, err := s.apps.FindByJobAndTeacher(ctx, jobID, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrApplicantNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}

	won, err := s.jobs.ConfirmHiring(ctx, jobID, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to confirm hiring")
	}
	if !won {
		// Lost the race: another confirmation (or a cancel) got there first.
		return nil, appErrors.ErrJobNotOpen
	}

	job.Status = models.JobFilled
	job.HiredTeacherID = &teacherID

	s.settleAfterHire(ctx, job, teacherID)

	s.logger.Info("job filled",
		zap.String("job_id", job.ID),
		zap.String("guardian_id", guardianID),
		zap.String("teacher_id", teacherID))
	return job, nil
}

// ViewApplicants lists a job's applicants for its owning guardian. Same
// masking rule as hiring: non-owners cannot tell the job exists.
func (s *HiringService) ViewApplicants(ctx context.Context, guardianID, jobID string) ([]models.ApplicantDetail, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	if job.GuardianID != guardianID {
		return nil, appErrors.ErrJobNotFound
	}

	details, err := s.apps.ListDetailsByJob(ctx, jobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	return details, nil
}

// settleAfterHire performs the post-commit side effects: commission
// invoice, in-app notifications and emails. None of these can undo the
// hire, so failures are logged and the call still succeeds.
func (s *HiringService) settleAfterHire(ctx context.Context, job *models.Job, teacherID string) {
	commission := job.Salary * s.commissionRate

	if err := s.invoices.Create(ctx, &models.CommissionInvoice{
		JobID:     job.ID,
		TeacherID: teacherID,
		Amount:    commission,
		Status:    models.InvoiceUnpaid,
	}); err != nil {
		s.logger.Warn("failed to create commission invoice", zap.Error(err), zap.String("job_id", job.ID))
	}

	hired, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		s.logger.Warn("failed to load hired teacher for notification", zap.Error(err))
	} else {
		if err := s.notifications.Create(ctx, &models.Notification{
			UserID: hired.ID,
			Title:  "You've been hired!",
			Body:   fmt.Sprintf("You have been hired for %q. Commission due: %.2f.", job.Title, commission),
			Link:   "/applications/mine",
		}); err != nil {
			s.logger.Warn("failed to create hire notification", zap.Error(err))
		}
		if s.mail != nil {
			s.mail.EnqueueHired(HiredEmail{
				To:         hired.Email,
				Name:       hired.FullName,
				JobTitle:   job.Title,
				Salary:     job.Salary,
				Commission: commission,
			})
		}
	}

	applicants, err := s.apps.ListDetailsByJob(ctx, job.ID)
	if err != nil {
		s.logger.Warn("failed to list applicants for rejection notices", zap.Error(err))
		return
	}
	for _, applicant := range applicants {
		if applicant.TeacherID == teacherID {
			continue
		}
		if err := s.notifications.Create(ctx, &models.Notification{
			UserID: applicant.TeacherID,
			Title:  "Position filled",
			Body:   fmt.Sprintf("The job %q has been filled by another applicant.", job.Title),
			Link:   "/jobs",
		}); err != nil {
			s.logger.Warn("failed to create rejection notification", zap.Error(err))
		}
		if s.mail != nil {
			s.mail.EnqueueRejected(RejectedEmail{
				To:       applicant.TeacherEmail,
				Name:     applicant.TeacherName,
				JobTitle: job.Title,
			})
		}
	}
}

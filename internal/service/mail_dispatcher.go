package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tutorhubbd/tutorhub-api/pkg/jobs"
	"github.com/tutorhubbd/tutorhub-api/pkg/mailer"
)

// Mail task types handled by the outbound queue.
const (
	mailTaskOTP      = "otp_email"
	mailTaskHired    = "hired_email"
	mailTaskRejected = "rejected_email"
)

// OTPEmail is the payload for a verification code email.
type OTPEmail struct {
	To   string
	Code string
	TTL  time.Duration
}

// HiredEmail is the payload for a hire congratulation email.
type HiredEmail struct {
	To         string
	Name       string
	JobTitle   string
	Salary     float64
	Commission float64
}

// RejectedEmail is the payload for a position-filled email.
type RejectedEmail struct {
	To       string
	Name     string
	JobTitle string
}

// MailDispatcher feeds the outbound mail queue. Enqueue failures are
// logged and swallowed: email is advisory, never part of a transaction.
type MailDispatcher struct {
	queue  *jobs.Queue
	logger *zap.Logger
	otpTTL time.Duration
}

// NewMailDispatcher wraps a started queue.
func NewMailDispatcher(queue *jobs.Queue, logger *zap.Logger, otpTTL time.Duration) *MailDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MailDispatcher{queue: queue, logger: logger, otpTTL: otpTTL}
}

// EnqueueOTP queues a verification code email.
func (d *MailDispatcher) EnqueueOTP(email, code string) {
	d.enqueue(mailTaskOTP, OTPEmail{To: email, Code: code, TTL: d.otpTTL})
}

// EnqueueHired queues the congratulation email for a hired teacher.
func (d *MailDispatcher) EnqueueHired(msg HiredEmail) {
	d.enqueue(mailTaskHired, msg)
}

// EnqueueRejected queues the position-filled email for a passed-over applicant.
func (d *MailDispatcher) EnqueueRejected(msg RejectedEmail) {
	d.enqueue(mailTaskRejected, msg)
}

func (d *MailDispatcher) enqueue(taskType string, payload interface{}) {
	task := jobs.Task{ID: uuid.NewString(), Type: taskType, Payload: payload}
	if err := d.queue.Enqueue(task); err != nil {
		d.logger.Warn("failed to enqueue mail task", zap.String("type", taskType), zap.Error(err))
	}
}

// NewMailHandler returns the queue handler that renders and sends each
// mail task through SMTP.
func NewMailHandler(m *mailer.Mailer) jobs.Handler {
	return func(ctx context.Context, task jobs.Task) error {
		switch payload := task.Payload.(type) {
		case OTPEmail:
			return m.SendOTP(payload.To, payload.Code, payload.TTL)
		case HiredEmail:
			return m.SendHired(payload.To, payload.Name, payload.JobTitle, payload.Salary, payload.Commission)
		case RejectedEmail:
			return m.SendRejected(payload.To, payload.Name, payload.JobTitle)
		default:
			return fmt.Errorf("unknown mail task type %q", task.Type)
		}
	}
}

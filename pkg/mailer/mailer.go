package mailer

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/tutorhubbd/tutorhub-api/pkg/config"
)

// Mailer sends transactional emails over SMTP. With no host configured
// it runs in dry-run mode: every send is logged and reported successful,
// so local environments work without an SMTP server.
type Mailer struct {
	dialer *gomail.Dialer
	host   string
	from   string
	logger *zap.Logger
}

// New builds a Mailer from SMTP configuration.
func New(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		host:   cfg.Host,
		from:   cfg.From,
		logger: logger,
	}
}

// SendOTP delivers a verification code to a registering user.
func (m *Mailer) SendOTP(to, code string, ttl time.Duration) error {
	body := fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Use the following code to complete your registration:</p>
		<p style="font-size:28px;font-weight:bold;letter-spacing:6px;">%s</p>
		<p>The code expires in %d minutes. Do not share it with anyone.</p>
		<p>If you did not request this, you can ignore this email.</p>
	`, code, int(ttl.Minutes()))

	return m.send(to, "Verify Your Email - TutorHubBD", body)
}

// SendHired notifies a teacher they were hired for a job.
func (m *Mailer) SendHired(to, teacherName, jobTitle string, salary, commission float64) error {
	body := fmt.Sprintf(`
		<h2>Congratulations! You've Been Hired!</h2>
		<p>Hello %s,</p>
		<p>You have been hired for the tuition job <strong>%s</strong> (salary %.2f).</p>
		<p>Please pay the platform commission of %.2f to complete the process.</p>
		<p>Log in to TutorHubBD to view your applications and invoices.</p>
	`, teacherName, jobTitle, salary, commission)

	return m.send(to, fmt.Sprintf("You've Been Hired for %q - TutorHubBD", jobTitle), body)
}

// SendRejected notifies a teacher the position they applied to was filled.
func (m *Mailer) SendRejected(to, teacherName, jobTitle string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>The tuition job <strong>%s</strong> has been filled by another applicant.</p>
		<p>Keep browsing open jobs on TutorHubBD, new postings appear every day.</p>
	`, teacherName, jobTitle)

	return m.send(to, "Application Update - TutorHubBD", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if m.host == "" {
		m.logger.Info("smtp host not configured, dropping email", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

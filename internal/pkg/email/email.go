package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/peoplehub/hr-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Sender delivers the templated mails the leave and penalty flows produce.
type Sender interface {
	SendLeaveSubmitted(to, employeeName, categoryName, amount, dateRange string) error
	SendLeaveDecided(to, categoryName, amount, status, rejectionReason string) error
	SendPenaltyNotice(to, date, clockIn string, lateCount int, amountDays string) error
}

type senderImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewSender creates a new email sender instance
func NewSender(cfg config.SMTPConfig) (Sender, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &senderImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type leaveSubmittedData struct {
	EmployeeName string
	CategoryName string
	Amount       string
	DateRange    string
}

func (s *senderImpl) SendLeaveSubmitted(to, employeeName, categoryName, amount, dateRange string) error {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, "leave_submitted.html", leaveSubmittedData{
		EmployeeName: employeeName,
		CategoryName: categoryName,
		Amount:       amount,
		DateRange:    dateRange,
	})
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Leave request pending: %s", employeeName), body.String())
}

type leaveDecidedData struct {
	CategoryName    string
	Amount          string
	Status          string
	RejectionReason string
}

func (s *senderImpl) SendLeaveDecided(to, categoryName, amount, status, rejectionReason string) error {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, "leave_decided.html", leaveDecidedData{
		CategoryName:    categoryName,
		Amount:          amount,
		Status:          status,
		RejectionReason: rejectionReason,
	})
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", status), body.String())
}

type penaltyNoticeData struct {
	Date       string
	ClockIn    string
	LateCount  int
	AmountDays string
}

func (s *senderImpl) SendPenaltyNotice(to, date, clockIn string, lateCount int, amountDays string) error {
	var body bytes.Buffer
	err := s.templates.ExecuteTemplate(&body, "penalty_notice.html", penaltyNoticeData{
		Date:       date,
		ClockIn:    clockIn,
		LateCount:  lateCount,
		AmountDays: amountDays,
	})
	if err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Late arrival penalty assessed", body.String())
}

func (s *senderImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

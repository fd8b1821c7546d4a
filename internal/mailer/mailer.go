package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/config"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// ErrNotConfigured is returned when SMTP settings are incomplete.
var ErrNotConfigured = errors.New("smtp configuration is incomplete")

// Dialer sends prepared messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer implements domain.Notifier over SMTP.
type Mailer struct {
	dialer Dialer
	from   string
	to     []string
	logger *logger.Logger
}

func New(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	var d Dialer
	if cfg.Host != "" && cfg.From != "" {
		d = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return NewWithDialer(d, cfg.From, cfg.NotifyTo, log)
}

func NewWithDialer(d Dialer, from string, to []string, log *logger.Logger) *Mailer {
	return &Mailer{dialer: d, from: from, to: to, logger: log.Named("Mailer")}
}

// NotifyCallbackRequested emails the operators about a new request. With no
// recipients configured it does nothing.
func (m *Mailer) NotifyCallbackRequested(ctx context.Context, req *domain.CallbackRequest) error {
	if len(m.to) == 0 {
		m.logger.Debug("No notification recipients configured, skipping email")
		return nil
	}
	if m.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.callbackMessage(req)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	m.logger.Info("Callback notification sent", zap.Strings("to", m.to), zap.String("request_id", req.ID))
	return nil
}

func (m *Mailer) callbackMessage(req *domain.CallbackRequest) *gomail.Message {
	kind := "Callback"
	if req.Type == domain.CallbackTypeVisit {
		kind = "Visit"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "New %s request for %s\n\n", strings.ToLower(kind), req.PGName)
	fmt.Fprintf(&body, "Name: %s\n", req.Name)
	fmt.Fprintf(&body, "Phone: %s\n", req.Phone)
	if req.PreferredTime != "" {
		fmt.Fprintf(&body, "Preferred time: %s\n", req.PreferredTime)
	}
	if req.Message != "" {
		fmt.Fprintf(&body, "Message: %s\n", req.Message)
	}
	fmt.Fprintf(&body, "\nPG id: %s\nRequest id: %s\n", req.PGID, req.ID)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", fmt.Sprintf("%s request: %s", kind, req.PGName))
	msg.SetBody("text/plain", body.String())
	return msg
}

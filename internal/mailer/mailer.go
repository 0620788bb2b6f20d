// Package mailer sends newsletter email best-effort over SMTP. Sends never
// block or fail the triggering request; failures are logged only.
package mailer

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/edmarcres18/mhrhci-backend/config"
	"github.com/edmarcres18/mhrhci-backend/internal/domain"
)

const notifyChunkSize = 200

// Mailer delivers newsletter mail through the configured SMTP relay. A
// disabled configuration turns every send into a logged no-op.
type Mailer struct {
	cfg       config.MailConfig
	publicURL string
}

// NewMailer creates a mailer from the application mail settings.
func NewMailer(cfg config.MailConfig, publicURL string) *Mailer {
	return &Mailer{cfg: cfg, publicURL: publicURL}
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.cfg.Enable {
		zap.L().Debug("mail disabled, skipping send", zap.String("to", to), zap.String("subject", subject))
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return dialer.DialAndSend(msg)
}

func (m *Mailer) unsubscribeLink(sub *domain.NewsletterSubscription) string {
	return fmt.Sprintf("%s/api/v1/newsletter/unsubscribe?token=%s", m.publicURL, sub.UnsubscribeToken)
}

// SendSubscribed confirms a new subscription in a background goroutine.
func (m *Mailer) SendSubscribed(sub *domain.NewsletterSubscription) {
	go func() {
		body := fmt.Sprintf(
			"Hi %s,\n\nThank you for subscribing to the MHRHCI newsletter.\n\nUnsubscribe anytime: %s\n",
			sub.FirstName, m.unsubscribeLink(sub))
		if err := m.send(sub.Email, "Welcome to the MHRHCI newsletter", body); err != nil {
			zap.L().Warn("subscription confirmation mail failed",
				zap.String("email", sub.Email), zap.Error(err))
		}
	}()
}

// NotifySubscribers announces new content to every active subscriber in a
// background goroutine, chunked so one bad address cannot stall the batch.
func (m *Mailer) NotifySubscribers(subs []domain.NewsletterSubscription, subject, body string) {
	go func() {
		for start := 0; start < len(subs); start += notifyChunkSize {
			end := start + notifyChunkSize
			if end > len(subs) {
				end = len(subs)
			}
			for _, sub := range subs[start:end] {
				personalized := fmt.Sprintf("%s\n\nUnsubscribe: %s\n", body, m.unsubscribeLink(&sub))
				if err := m.send(sub.Email, subject, personalized); err != nil {
					zap.L().Warn("newsletter notification mail failed",
						zap.String("email", sub.Email), zap.Error(err))
				}
			}
		}
	}()
}

// SendInvitation mails a registration invitation link.
func (m *Mailer) SendInvitation(inv *domain.Invitation) {
	go func() {
		body := fmt.Sprintf(
			"You have been invited to the MHRHCI admin console as %s.\n\nAccept: %s/invitations/accept?token=%s\n\nThe invitation expires at %s.\n",
			inv.Role.DisplayName(), m.publicURL, inv.Token, inv.ExpiresAt.Format("2006-01-02 15:04"))
		if err := m.send(inv.Email, "MHRHCI admin invitation", body); err != nil {
			zap.L().Warn("invitation mail failed", zap.String("email", inv.Email), zap.Error(err))
		}
	}()
}

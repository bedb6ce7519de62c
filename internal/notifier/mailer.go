package notifier

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"mindlyst/internal/config"
	"mindlyst/internal/events"
	"mindlyst/internal/models"
)

// Mailer turns contact lifecycle events into notification emails. With no
// SMTP host configured it only logs, which is what development setups use.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func subjectAndBody(event events.Event, actor *models.User) (string, string) {
	name := event.ActorID
	if actor != nil {
		name = actor.Username
	}
	switch event.Type {
	case events.TypeRequestCreated:
		return "🔔 MindLyst : nouvelle demande de contact",
			fmt.Sprintf("%s souhaite vous ajouter à ses contacts. Connectez-vous pour accepter ou refuser la demande.", name)
	case events.TypeRequestAccepted:
		return "🔔 MindLyst : demande de contact acceptée",
			fmt.Sprintf("%s a accepté votre demande de contact.", name)
	case events.TypeRequestRejected:
		return "🔔 MindLyst : demande de contact refusée",
			fmt.Sprintf("%s a refusé votre demande de contact.", name)
	case events.TypeContactRemoved:
		return "🔔 MindLyst : contact retiré",
			fmt.Sprintf("%s vous a retiré de ses contacts.", name)
	default:
		return "", ""
	}
}

// Send emails the notified user about the event. Unknown event types are
// ignored.
func (m *Mailer) Send(event events.Event, recipient, actor *models.User) error {
	subject, body := subjectAndBody(event, actor)
	if subject == "" || recipient == nil {
		return nil
	}

	if m.cfg.Host == "" {
		slog.Info("smtp not configured, logging notification",
			"to", recipient.Email, "subject", subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.cfg.From, recipient.Email, subject, body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{recipient.Email}, []byte(msg))
}

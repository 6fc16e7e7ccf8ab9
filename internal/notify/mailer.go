// Package notify sends deadline reminders by email and push.
package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"famorg/internal/entity"
)

// Mailer sends reminder emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
	logger *slog.Logger
}

func NewMailer(host string, port int, username, password, sender string, logger *slog.Logger) *Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
		logger: logger,
	}
}

// SendDeadlineReminder emails the profile a digest of tasks due soon.
func (m *Mailer) SendDeadlineReminder(toEmail string, tasks []*entity.Task) error {
	if toEmail == "" {
		return fmt.Errorf("no recipient email")
	}
	if len(tasks) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", toEmail)
	if len(tasks) == 1 {
		msg.SetHeader("Subject", "Rappel : "+tasks[0].Title)
	} else {
		msg.SetHeader("Subject", fmt.Sprintf("Rappel : %d tâches arrivent à échéance", len(tasks)))
	}
	msg.SetBody("text/html", reminderBody(tasks))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("notify.mail.send_failed", "to", toEmail, "tasks", len(tasks), "error", err)
		return err
	}
	m.logger.Info("notify.mail.ok", "to", toEmail, "tasks", len(tasks))
	return nil
}

func reminderBody(tasks []*entity.Task) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	b.WriteString("<h2>Tâches à échéance</h2><ul>")
	for _, t := range tasks {
		b.WriteString("<li><strong>")
		b.WriteString(htmlEscape(t.Title))
		b.WriteString("</strong>")
		if !t.Deadline.IsZero() {
			b.WriteString(" — avant le ")
			b.WriteString(t.Deadline.Format("02/01/2006"))
		}
		if t.ContactName != "" {
			b.WriteString(" (contact : ")
			b.WriteString(htmlEscape(t.ContactName))
			b.WriteString(")")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul></div>")
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

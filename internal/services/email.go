package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"studyhub-backend/internal/logger"
	"studyhub-backend/internal/models"
)

type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	log     *logger.Logger
	devMode bool
}

func NewEmailService(host, port, user, pass, from string, log *logger.Logger) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Warn("email service running in dev mode, messages logged instead of sent")
	}
	return &EmailService{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		log:     log,
		devMode: devMode,
	}
}

// SendStudyReminder emails a user their upcoming planner sessions.
func (s *EmailService) SendStudyReminder(to, fullName string, sessions []models.StudySession) error {
	if len(sessions) == 0 {
		return nil
	}

	subject := "Your upcoming study sessions"

	var rows strings.Builder
	for i := range sessions {
		rows.WriteString(fmt.Sprintf(
			`<li style="margin-bottom: 8px;"><strong>%s</strong> — %s, %s at %s (%s)</li>`,
			sessions[i].Subject, sessions[i].Topic,
			sessions[i].Date.Format("Mon Jan 2"), sessions[i].StartTime, sessions[i].Duration,
		))
	}

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; color: #1e293b;">
  <div style="max-width: 480px; margin: 24px auto;">
    <h2 style="margin: 0 0 12px;">Hi %s,</h2>
    <p style="color: #64748b;">Here is what's on your study plan:</p>
    <ul style="padding-left: 20px;">%s</ul>
    <p style="color: #94a3b8; font-size: 12px;">You can manage reminders in your StudyHub settings.</p>
  </div>
</body>
</html>`, fullName, rows.String())

	return s.sendHTML(to, subject, body)
}

func (s *EmailService) sendHTML(to, subject, body string) error {
	if s.devMode {
		s.log.Info("dev mode email", "to", to, "subject", subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

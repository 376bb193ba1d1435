package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
)

// SMTP delivers messages through an authenticated mail server.
type SMTP struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func (s *SMTP) Name() string { return "smtp" }

// Configured reports whether credentials are present.
func (s *SMTP) Configured() bool {
	return s.User != "" && s.Pass != "" && s.Host != "" && s.To != ""
}

// Send composes and sends m. The context is checked before dialing only;
// net/smtp has no cancellation.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	if !s.Configured() {
		return errors.New("SMTP credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	send := s.send
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTP) compose(m Message) []byte {
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Subject, m.Message)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: Portfolio Contact: " + m.Subject + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// Package contact validates contact-form submissions and delivers them,
// falling back to a prefilled mailto link when every channel fails.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Validation errors are shown to the visitor verbatim.
var (
	ErrMissingField = errors.New("Please fill in all fields")
	ErrInvalidEmail = errors.New("Please enter a valid email address")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is one contact-form submission.
type Message struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Validate checks that every field is present and the email looks valid.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" ||
		strings.TrimSpace(m.Subject) == "" || strings.TrimSpace(m.Message) == "" {
		return ErrMissingField
	}
	if !emailPattern.MatchString(m.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Sender is one delivery channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// Result describes how a message left the server.
type Result struct {
	Delivered bool   `json:"delivered"`
	Via       string `json:"via"`
	Mailto    string `json:"mailto,omitempty"`
}

// Dispatcher tries each sender in order.
type Dispatcher struct {
	senders []Sender
	inbox   string
	log     *zap.Logger
}

// NewDispatcher returns a dispatcher. inbox is the address used for the
// mailto fallback.
func NewDispatcher(inbox string, log *zap.Logger, senders ...Sender) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{senders: senders, inbox: inbox, log: log}
}

// Deliver validates m and sends it through the first channel that accepts
// it. Only validation failures are returned as errors; delivery failures
// degrade to a mailto link in the result.
func (d *Dispatcher) Deliver(ctx context.Context, m Message) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	for _, s := range d.senders {
		err := s.Send(ctx, m)
		if err == nil {
			d.log.Info("contact message sent", zap.String("via", s.Name()))
			return Result{Delivered: true, Via: s.Name()}, nil
		}
		d.log.Warn("contact sender failed", zap.String("via", s.Name()), zap.Error(err))
	}
	return Result{Via: "mailto", Mailto: MailtoLink(d.inbox, m)}, nil
}

// MailtoLink builds a mailto URL carrying m.
func MailtoLink(to string, m Message) string {
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", m.Name, m.Email, m.Message)
	return "mailto:" + to + "?subject=" + escape(m.Subject) + "&body=" + escape(body)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

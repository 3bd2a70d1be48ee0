package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker"
)

// Sender dispatches a single notification. Jobs treat a send failure as
// non-fatal: they log it and continue with the next recipient.
type Sender interface {
	Send(to, subject, body string, html bool) error
}

// SMTPSender delivers over a plain SMTP relay (MailHog in local dev). Sends
// run through a circuit breaker so a dead relay fails fast instead of
// stalling a whole job run.
type SMTPSender struct {
	Addr string
	From string
	cb   *gobreaker.CircuitBreaker
}

func NewSMTPSender(addr, from string) *SMTPSender {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SMTP",
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     time.Second * 30,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[Mailer] circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return &SMTPSender{Addr: addr, From: from, cb: cb}
}

func (s *SMTPSender) Send(to, subject, body string, html bool) error {
	contentType := "text/plain; charset=UTF-8"
	if html {
		contentType = "text/html; charset=UTF-8"
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n%s",
		s.From, to, subject, contentType, body)

	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg))
	})
	return err
}

// LogSender is used when no SMTP relay is configured; it only logs the
// would-be notification.
type LogSender struct{}

func (LogSender) Send(to, subject, body string, html bool) error {
	log.Printf("[Mailer] (log only) to=%s subject=%q bytes=%d", to, subject, len(body))
	return nil
}

// New picks the real sender when an SMTP address is configured, the
// log-only sender otherwise.
func New(smtpAddr, from string) Sender {
	if smtpAddr == "" {
		log.Println("[Mailer] SMTP_ADDR not set, notifications will only be logged")
		return LogSender{}
	}
	return NewSMTPSender(smtpAddr, from)
}

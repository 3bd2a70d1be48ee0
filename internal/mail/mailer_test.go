package mail

import "testing"

func TestNewFallsBackToLogSender(t *testing.T) {
	if _, ok := New("", "noreply@homecare.local").(LogSender); !ok {
		t.Error("expected the log-only sender when no SMTP address is set")
	}
	if _, ok := New("localhost:1025", "noreply@homecare.local").(*SMTPSender); !ok {
		t.Error("expected the SMTP sender when an address is set")
	}
}

func TestLogSenderNeverFails(t *testing.T) {
	if err := (LogSender{}).Send("a@b.c", "subject", "body", false); err != nil {
		t.Errorf("LogSender.Send: %v", err)
	}
}

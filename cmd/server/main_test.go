package main

import (
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/infrastructure/mail"
	"github.com/newsroom/publishing-api/internal/pkg/config"
	"github.com/newsroom/publishing-api/pkg/logger"
)

func TestNewMailer(t *testing.T) {
	logger.Reset()
	t.Cleanup(logger.Reset)
	logger.Init(logger.Options{Output: io.Discard})

	cfg := &config.Config{}
	m, err := newMailer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newMailer: %v", err)
	}
	if _, ok := m.(*mail.LogMailer); !ok {
		t.Fatalf("expected the log mailer without SMTP_HOST, got %T", m)
	}

	cfg.Mail = config.MailConfig{Host: "smtp.example.com", Port: 587, From: "root@example.com"}
	m, err = newMailer(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newMailer: %v", err)
	}
	if _, ok := m.(*mail.SMTPMailer); !ok {
		t.Fatalf("expected the smtp mailer, got %T", m)
	}
}

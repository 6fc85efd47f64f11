// Package mailer dispatches confirmation codes out of band.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"media-review/pkg/utils"
)

var ErrSendFailed = errors.New("mail dispatch failed")

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New returns an SMTP mailer when a host is configured and a log-only mailer otherwise.
func New(config utils.EmailConfig, log *zap.Logger) Mailer {
	if config.Host == "" {
		log.Warn("SMTP_HOST not set, confirmation mail will only be logged")
		return NewLogMailer(log)
	}
	return NewSMTPMailer(config, log)
}

type SMTPMailer struct {
	addr    string
	auth    smtp.Auth
	from    string
	timeout time.Duration
	log     *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) *SMTPMailer {
	var auth smtp.Auth
	if config.User != "" {
		auth = smtp.PlainAuth("", config.User, config.Password, config.Host)
	}

	return &SMTPMailer{
		addr:    net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		auth:    auth,
		from:    config.From,
		timeout: 10 * time.Second,
		log:     log.With(zap.String("component", "smtp_mailer")),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := buildMessage(m.from, to, subject, body)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg)
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			m.log.Error("Failed to send mail", zap.Error(err), zap.String("to", to))
			return fmt.Errorf("%w: %v", ErrSendFailed, err)
		}
		m.log.Info("Mail sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	case <-timer.C:
		m.log.Error("Mail send timed out", zap.String("to", to))
		return fmt.Errorf("%w: timeout after %s", ErrSendFailed, m.timeout)
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrSendFailed, ctx.Err())
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// LogMailer writes messages to the debug log instead of delivering them.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.With(zap.String("component", "log_mailer"))}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Debug("Mail not delivered (no SMTP configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

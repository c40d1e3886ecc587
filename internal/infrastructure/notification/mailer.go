package notification

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

// Mailer delivers a single plain-text message
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

var (
	dialContext = (&net.Dialer{}).DialContext
	sendMail    = sendMailContext
)

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates an SMTP mailer
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     strings.TrimSpace(host),
		port:     port,
		username: username,
		password: password,
		from:     strings.TrimSpace(from),
	}
}

// Send writes a MIME text message to the relay
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.host == "" || m.port == 0 || m.from == "" {
		return errors.New("mailer missing configuration")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	var auth smtp.Auth
	if m.username != "" || m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	return sendMail(ctx, addr, m.host, auth, m.from, []string{to}, []byte(msg.String()))
}

// sendMailContext is smtp.SendMail bounded by ctx. The connection deadline
// follows ctx and cancellation closes the connection.
func sendMailContext(ctx context.Context, addr, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := dialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp relay: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	err = deliver(conn, host, auth, from, to, msg)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("smtp send aborted: %w", ctxErr)
	}
	// the conn deadline can fire just before the ctx timer does
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return fmt.Errorf("smtp send aborted: %w", context.DeadlineExceeded)
	}
	return err
}

func deliver(conn net.Conn, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp: server doesn't support AUTH")
		}
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// LogMailer writes messages to the application log instead of sending them.
// Used when no SMTP relay is configured.
type LogMailer struct{}

// NewLogMailer creates a log mailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs the message
func (LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger.Info(ctx, "Email (log mailer)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

package workers_test

import (
	"context"
	"net"
	"net/mail"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/pkg/config"
	"github.com/ammerola/frontdesk-be/internal/workers"
	"github.com/ammerola/frontdesk-be/test/helpers"
)

// startSMTPRelay accepts one SMTP session on a local port and delivers the
// DATA section of the message it receives.
func startSMTPRelay(t *testing.T) (config.NotificationConfig, <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	messages := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		_ = tp.PrintfLine("220 localhost ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			verb, _, _ := strings.Cut(line, " ")
			switch strings.ToUpper(verb) {
			case "EHLO", "HELO":
				_ = tp.PrintfLine("250 localhost")
			case "DATA":
				_ = tp.PrintfLine("354 end with <CRLF>.<CRLF>")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				messages <- string(data)
				_ = tp.PrintfLine("250 queued")
			case "QUIT":
				_ = tp.PrintfLine("221 bye")
				return
			default:
				_ = tp.PrintfLine("250 ok")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	return config.NotificationConfig{
		SMTPHost: host,
		SMTPPort: port,
		From:     "frontdesk@example.com",
		To:       "desk@example.com",
	}, messages
}

func TestSMTPMailer_Send(t *testing.T) {
	cfg, messages := startSMTPRelay(t)
	mailer := workers.NewSMTPMailer(cfg)

	require.NoError(t, mailer.Send(context.Background(), cfg.To, "Low stock: Cable", "Cable is down to 1."))

	select {
	case raw := <-messages:
		msg, err := mail.ReadMessage(strings.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, "Low stock: Cable", msg.Header.Get("Subject"))
		assert.Equal(t, cfg.From, msg.Header.Get("From"))
		assert.Equal(t, cfg.To, msg.Header.Get("To"))
	case <-time.After(5 * time.Second):
		t.Fatal("relay received no message")
	}
}

func TestAlertProcessor_ItemNameCannotAddHeaders(t *testing.T) {
	cfg, messages := startSMTPRelay(t)
	p := workers.NewAlertProcessor(workers.NewSMTPMailer(cfg), cfg.To, helpers.TestLogger())

	task := mustTask(t)(workers.NewLowStockAlertTask(
		domain.InventoryItem{ItemName: "Pods\r\nBcc: someone@example.net", CurrentStock: 1}, 2))
	require.NoError(t, p.ProcessLowStockAlert(context.Background(), task))

	select {
	case raw := <-messages:
		msg, err := mail.ReadMessage(strings.NewReader(raw))
		require.NoError(t, err)
		assert.Empty(t, msg.Header.Get("Bcc"))
		assert.Equal(t, "Low stock: Pods Bcc: someone@example.net", msg.Header.Get("Subject"))
	case <-time.After(5 * time.Second):
		t.Fatal("relay received no message")
	}
}

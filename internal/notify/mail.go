package notify

import (
	"fmt"
	"net/smtp"

	"github.com/go-faster/errors"

	"github.com/almasoman/almas-api/internal/domain/order"
)

// MailConfig holds SMTP settings for order-confirmation mail. A zero config
// disables sending.
type MailConfig struct {
	Addr     string // host:port of the SMTP server
	From     string
	Password string
}

// Enabled reports whether confirmation mail is configured.
func (c MailConfig) Enabled() bool {
	return c.Addr != "" && c.From != ""
}

// Mailer sends order-confirmation mail over SMTP.
type Mailer struct {
	cfg  MailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer with the given SMTP configuration.
func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// SendOrderConfirmation mails the order summary to the given address.
func (m *Mailer) SendOrderConfirmation(to string, o *order.Order) error {
	if !m.cfg.Enabled() {
		return nil
	}

	host, _, _ := splitAddr(m.cfg.Addr)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, host)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Order %s confirmed\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.From, to, o.ID, summarize(o),
	)

	if err := m.send(m.cfg.Addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return errors.Wrap(err, "send confirmation mail")
	}
	return nil
}

func splitAddr(addr string) (host, port string, ok bool) {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i], addr[i+1:], true
		}
	}
	return addr, "", false
}

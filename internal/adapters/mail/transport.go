package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/gorchard/farmhand/internal/domain"
	"github.com/gorchard/farmhand/internal/ports"
)

// Transport delivers alerts over SMTP. One attempt per Send; the caller
// owns the no-retry policy.
type Transport struct{}

var _ ports.AlertTransport = (*Transport)(nil)

func NewTransport() *Transport { return &Transport{} }

func (t *Transport) Send(ctx context.Context, settings domain.AlertSettings, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(settings.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(settings.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{gomail.WithPort(settings.Port)}
	if settings.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(settings.Username),
			gomail.WithPassword(settings.Password),
		)
	}
	if settings.Secure {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(settings.Host, opts...)
	if err != nil {
		return fmt.Errorf("build smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

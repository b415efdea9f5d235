package email

import "context"

type Provider interface {
	Send(ctx context.Context, email *Email) error
	Validate() error
}

// NewProvider returns an SMTP provider when sending is enabled and a
// recording mock otherwise.
func NewProvider(cfg *SMTPConfig, enabled bool) Provider {
	if !enabled {
		return NewMockProvider()
	}
	return NewSMTPProvider(cfg)
}

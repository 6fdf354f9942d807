package application

import (
	"context"
	"log/slog"

	"github.com/gorchard/farmhand/internal/ports"
)

// Alerter sends best-effort notifications. Delivery is at most once: a
// failed send is logged and dropped, never retried, and never surfaces to
// the caller.
type Alerter struct {
	config    *ConfigService
	transport ports.AlertTransport
	log       *slog.Logger
}

func NewAlerter(config *ConfigService, transport ports.AlertTransport, log *slog.Logger) *Alerter {
	if log == nil {
		log = slog.Default()
	}
	return &Alerter{config: config, transport: transport, log: log}
}

func (a *Alerter) Notify(ctx context.Context, subject, body string) {
	settings := a.config.Get().Alert
	if !settings.Enabled {
		a.log.Debug("alerting disabled, skipping notification", "subject", subject)
		return
	}
	if !settings.Configured() {
		a.log.Warn("alert transport incompletely configured, skipping notification", "subject", subject)
		return
	}
	if err := a.transport.Send(ctx, settings, subject, body); err != nil {
		a.log.Warn("alert delivery failed", "subject", subject, "error", err)
		return
	}
	a.log.Info("alert delivered", "subject", subject, "to", settings.To)
}

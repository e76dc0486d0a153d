package logpush

import (
	"context"

	"dose-agil/internal/domain/reminders"
	"dose-agil/internal/platform/logger"
)

// Pusher solo loguea; se usa en dev cuando no hay gateway configurado.
type Pusher struct {
	log logger.Logger
}

func New(log logger.Logger) *Pusher {
	if log == nil {
		log = logger.Nop()
	}
	return &Pusher{log: log}
}

func (p *Pusher) Push(_ context.Context, msgs []reminders.Message) error {
	for _, m := range msgs {
		p.log.Info("push (log only)", map[string]any{
			"to":    m.To,
			"title": m.Title,
			"body":  m.Body,
			"data":  m.Data,
		})
	}
	return nil
}

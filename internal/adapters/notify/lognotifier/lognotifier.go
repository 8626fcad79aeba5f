// Package lognotifier es el Notifier de desarrollo: escribe cada envío en el log.
package lognotifier

import (
	"context"

	"pet-adoption-marketplace/internal/platform/logger"
)

type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log}
}

func (n *Notifier) Send(ctx context.Context, to, template string, data map[string]any) error {
	n.log.Info("notification", map[string]any{
		"to":       to,
		"template": template,
		"data":     data,
	})
	return nil
}

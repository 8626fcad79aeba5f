package notify

import "context"

// Templates conocidos por el gateway de correo.
const (
	TemplateNewApplication          = "new-application"
	TemplateApplicationStatusUpdate = "application-status-update"
)

// Notifier envía un mensaje con plantilla. Es fire-and-forget desde el punto de
// vista del dominio: quien llama loguea el error y sigue.
type Notifier interface {
	Send(ctx context.Context, to, template string, data map[string]any) error
}

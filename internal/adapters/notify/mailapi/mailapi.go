// Package mailapi manda notificaciones con plantilla a un gateway de correo HTTP.
package mailapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/platform/httpclient"
)

var ErrNoRecipient = errors.New("mail: empty recipient")

const sendPath = "/v1/messages"

type Config struct {
	BaseURL string
	APIKey  string
	From    string
	Timeout time.Duration
}

type Notifier struct {
	client *httpclient.Client
	from   string
}

func New(cfg Config) (*Notifier, error) {
	client, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: map[string]string{"Authorization": "Bearer " + strings.TrimSpace(cfg.APIKey)},
	})
	if err != nil {
		return nil, fmt.Errorf("mail api: %w", err)
	}
	return &Notifier{client: client, from: cfg.From}, nil
}

type message struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

func (n *Notifier) Send(ctx context.Context, to, template string, data map[string]any) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrNoRecipient
	}
	if data == nil {
		data = map[string]any{}
	}
	return n.client.DoJSON(ctx, http.MethodPost, sendPath, message{
		From:     n.from,
		To:       to,
		Template: template,
		Data:     data,
	}, nil)
}

package mailapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-marketplace/internal/platform/httpclient"
	"pet-adoption-marketplace/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Send(t *testing.T) {
	var got message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sendPath, r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := New(Config{BaseURL: srv.URL, APIKey: "k", From: "no-reply@example.org"})
	require.NoError(t, err)

	err = n.Send(context.Background(), "shelter@example.org", notify.TemplateNewApplication, map[string]any{"petName": "Rex"})
	require.NoError(t, err)
	assert.Equal(t, "no-reply@example.org", got.From)
	assert.Equal(t, "shelter@example.org", got.To)
	assert.Equal(t, notify.TemplateNewApplication, got.Template)
	assert.Equal(t, "Rex", got.Data["petName"])
}

func TestNotifier_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n, err := New(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	assert.True(t, errors.Is(n.Send(context.Background(), " ", "t", nil), ErrNoRecipient))

	var httpErr *httpclient.HTTPError
	assert.True(t, errors.As(n.Send(context.Background(), "a@b.c", "t", nil), &httpErr))
}

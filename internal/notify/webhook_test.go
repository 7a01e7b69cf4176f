package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookSend(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewWebhook(srv.URL)
	err := sink.Send(context.Background(), "it-ops@example.com", "Account provisioned for Jane Doe", "body text")
	require.NoError(t, err)

	assert.Equal(t, "it-ops@example.com", got.Address)
	assert.Equal(t, "Account provisioned for Jane Doe", got.Subject)
	assert.Equal(t, "body text", got.Body)
}

func TestWebhookSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := NewWebhook(srv.URL)
	err := sink.Send(context.Background(), "it-ops@example.com", "subject", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestWebhookSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sink := NewWebhook(srv.URL)
	err := sink.Send(context.Background(), "it-ops@example.com", "subject", "body")
	assert.Error(t, err)
}

func TestLogSink(t *testing.T) {
	err := Log{}.Send(context.Background(), "it-ops@example.com", "subject", "body")
	assert.NoError(t, err)
}

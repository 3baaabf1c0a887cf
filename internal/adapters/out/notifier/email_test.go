package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"ordertracking/internal/adapters/out/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailNotifier_Send(t *testing.T) {
	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	n := notifier.NewEmailNotifier(server.URL+"/", nil)

	err := n.Send(t.Context(), "ana@example.com", "Order #42 confirmed", "Your order #42 was confirmed.")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"to":      "ana@example.com",
		"subject": "Order #42 confirmed",
		"body":    "Your order #42 was confirmed.",
	}, got)
}

func TestEmailNotifier_Send_StatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"accepted", http.StatusAccepted, false},
		{"no content", http.StatusNoContent, false},
		{"redirect", http.StatusFound, true},
		{"bad request", http.StatusBadRequest, true},
		{"bad gateway", http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(server.Close)

			err := notifier.NewEmailNotifier(server.URL, server.Client()).Send(t.Context(), "ana@example.com", "s", "b")

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), strconv.Itoa(tt.status))
		})
	}
}

func TestEmailNotifier_Send_HonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := notifier.NewEmailNotifier(server.URL, server.Client()).Send(ctx, "ana@example.com", "s", "b")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

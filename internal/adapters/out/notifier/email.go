// Package notifier holds the ports.Notifier transports: the HTTP e-mail
// service, a RabbitMQ exchange and a log-only sink for local runs.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailNotifier posts messages to the e-mail service's /send endpoint.
type EmailNotifier struct {
	serviceURL string
	httpClient *http.Client
}

// NewEmailNotifier uses client when given, otherwise a client with a traced transport.
func NewEmailNotifier(serviceURL string, client *http.Client) *EmailNotifier {
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &EmailNotifier{
		serviceURL: strings.TrimRight(serviceURL, "/"),
		httpClient: client,
	}
}

// Send fails on any status other than 200.
func (n *EmailNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	data, err := json.Marshal(emailRequest{To: recipient, Subject: subject, Body: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.serviceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}

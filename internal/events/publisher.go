package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// LogPublisher writes events to a structured logger.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "ledger event",
		"type", e.Type,
		"event_id", e.ID,
		"customer_id", e.CustomerID,
		"shop_id", e.ShopID,
		"amount", e.Amount.String(),
	)

	return nil
}

// WebhookPublisher POSTs events as JSON to an external dispatcher.
type WebhookPublisher struct {
	url    string
	token  string
	client *http.Client
}

func NewWebhookPublisher(url, token string, timeout time.Duration) *WebhookPublisher {
	return &WebhookPublisher{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *WebhookPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code %d for event %s", resp.StatusCode, e.Type)
	}

	return nil
}

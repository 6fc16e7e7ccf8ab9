package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"famorg/internal/entity"
)

// Push posts reminders to a webhook (ntfy-compatible payload).
type Push struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *slog.Logger
}

func NewPush(endpoint, token string, logger *slog.Logger) *Push {
	if logger == nil {
		logger = slog.Default()
	}
	return &Push{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type pushPayload struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Tags     []string `json:"tags,omitempty"`
	Priority int      `json:"priority,omitempty"`
}

// SendDeadlineReminder pushes one notification per task due soon.
func (p *Push) SendDeadlineReminder(ctx context.Context, tasks []*entity.Task) error {
	for _, t := range tasks {
		msg := t.Title
		if !t.Deadline.IsZero() {
			msg = fmt.Sprintf("%s — avant le %s", t.Title, t.Deadline.Format("02/01/2006"))
		}
		if err := p.send(ctx, pushPayload{
			Title:   "Rappel",
			Message: msg,
			Tags:    []string{"calendar", t.Category},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Push) send(ctx context.Context, payload pushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error("notify.push.send_failed", "error", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		p.logger.Error("notify.push.bad_status", "status", resp.StatusCode)
		return fmt.Errorf("push status %d", resp.StatusCode)
	}
	p.logger.Debug("notify.push.ok", "title", payload.Title)
	return nil
}

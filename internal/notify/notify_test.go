package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"famorg/internal/entity"
)

func TestReminderBody(t *testing.T) {
	tasks := []*entity.Task{
		{Title: "Payer facture cantine - 98,00€",
			Deadline:    time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
			ContactName: "Mme <Durand>"},
		{Title: "Inscription judo"},
	}
	body := reminderBody(tasks)
	assert.Contains(t, body, "avant le 15/12/2025")
	assert.Contains(t, body, "Mme &lt;Durand&gt;")
	assert.Contains(t, body, "Inscription judo")
}

func TestPushSendsOnePerTask(t *testing.T) {
	var payloads []pushPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var p pushPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		payloads = append(payloads, p)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPush(srv.URL, "secret", nil)
	err := p.SendDeadlineReminder(context.Background(), []*entity.Task{
		{Title: "Payer la cantine", Category: "payment",
			Deadline: time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)},
		{Title: "Inscription judo", Category: "activity"},
	})
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Contains(t, payloads[0].Message, "avant le 15/12/2025")
	assert.Contains(t, payloads[0].Tags, "payment")
}

func TestPushPropagatesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewPush(srv.URL, "", nil)
	err := p.SendDeadlineReminder(context.Background(), []*entity.Task{{Title: "x"}})
	assert.Error(t, err)
}

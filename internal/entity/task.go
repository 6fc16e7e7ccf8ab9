package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is one actionable item on the family board. Tasks are created by
// the user directly or by the LLM classification of an ingested email or
// photo. The document engine treats tasks as immutable input.
type Task struct {
	ID            uuid.UUID `json:"id"`
	ProfileID     uuid.UUID `json:"profile_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Deadline      time.Time `json:"deadline"`
	Category      string    `json:"category,omitempty"`
	ContactName   string    `json:"contact_name,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	Source        string    `json:"source,omitempty"` // "manual" | "email" | "image"
	Done          bool      `json:"done"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FreeText returns the task's title and description joined, the text the
// pattern extractors run against.
func (t *Task) FreeText() string {
	if t.Description == "" {
		return t.Title
	}
	return strings.TrimSpace(t.Title + "\n" + t.Description)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document records one generated administrative document.
type Document struct {
	ID         uuid.UUID  `json:"id"`
	ProfileID  uuid.UUID  `json:"profile_id"`
	TaskID     *uuid.UUID `json:"task_id,omitempty"`
	TemplateID string     `json:"template_id"`
	Filename   string     `json:"filename"`
	URL        string     `json:"url,omitempty"` // empty when the upload failed
	CreatedAt  time.Time  `json:"created_at"`
}

package llm

import "context"

// FamilyContext gives the model light profile context so it can attach
// the right child to a school or daycare email.
type FamilyContext struct {
	ParentName string   `json:"parent_name,omitempty"`
	Children   []string `json:"children,omitempty"`
	City       string   `json:"city,omitempty"`
}

// TaskFields is the normalized shape we want from the LLM for a
// forwarded email or pasted text.
type TaskFields struct {
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Deadline        string  `json:"deadline,omitempty"` // YYYY-MM-DD
	Category        string  `json:"category,omitempty"` // must match AllowedCategories if provided
	ContactName     string  `json:"contact_name,omitempty"`
	ContactEmail    string  `json:"contact_email,omitempty"`
	ContactPhone    string  `json:"contact_phone,omitempty"`
	ChildName       string  `json:"child_name,omitempty"`
	Amount          string  `json:"amount,omitempty"` // decimal, EUR
	ModelConfidence float32 `json:"confidence,omitempty"`
}

type ClassifyRequest struct {
	Text              string
	Subject           string
	SenderHint        string
	AllowedCategories []string
	Timezone          string

	Family FamilyContext
}

// TaskClassifier is the interface the ingestion pipeline depends on.
type TaskClassifier interface {
	ClassifyTask(ctx context.Context, req ClassifyRequest) (TaskFields, []byte /*rawJSON*/, error)
}

// DefaultCategories is the built-in taxonomy used when a caller does
// not supply one.
var DefaultCategories = []string{
	"payment", "school", "health", "admin", "activity", "shopping", "other",
}

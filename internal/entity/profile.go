package entity

import (
	"time"

	"github.com/google/uuid"
)

// Child is one child of the family, kept in the order the user entered them.
type Child struct {
	FirstName string    `json:"first_name"`
	BirthDate time.Time `json:"birth_date"`
}

// Spouse is the optional second parent on a profile.
type Spouse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Profile represents a family profile for data transfer between layers.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	Children   []Child   `json:"children,omitempty"`
	Spouse     *Spouse   `json:"spouse,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// ChildFirstNames returns the children's first names in profile order.
func (p *Profile) ChildFirstNames() []string {
	out := make([]string, 0, len(p.Children))
	for _, c := range p.Children {
		out = append(out, c.FirstName)
	}
	return out
}

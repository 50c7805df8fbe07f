package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewEntry is the presentation shape: author display name falls back to
// "Anonymous" when the user record is missing.
type ReviewEntry struct {
	ID        uuid.UUID `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

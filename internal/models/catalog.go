package models

import (
	"github.com/google/uuid"
)

// Filter dimension lookup tables. Slugs are the stable external identifiers
// used in query parameters; ids stay internal.

type Brand struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	LogoURL *string   `json:"logo_url,omitempty"`
}

type Category struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type Gender struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Slug  string    `json:"slug"`
}

type Color struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	HexCode string    `json:"hex_code"`
}

type Size struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sort_order"`
}

// FilterCatalog bundles every filter dimension for filter UIs.
type FilterCatalog struct {
	Brands     []Brand    `json:"brands"`
	Categories []Category `json:"categories"`
	Genders    []Gender   `json:"genders"`
	Colors     []Color    `json:"colors"`
	Sizes      []Size     `json:"sizes"`
}

package domain

import (
	"fmt"
	"time"
)

// MaxCategoryTags caps the number of tags stored per category.
const MaxCategoryTags = 20

// Category is a taggable marketplace category anchored to a geographic point.
// Latitude/Longitude are nil for categories without an anchor; those are
// excluded from distance queries.
type Category struct {
	ID                 int64
	Name               string
	Image              *string
	Latitude           *float64
	Longitude          *float64
	Tags               []string
	ProviderShare      float64
	SeekerShare        float64
	DiscountPercentage float64
	CreatedAt          time.Time
}

// HasAnchor reports whether the category carries a usable anchor point.
func (c *Category) HasAnchor() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// ValidateShares enforces the revenue-sharing invariants: all percentages
// non-negative and provider+seeker not exceeding 100.
func ValidateShares(providerShare, seekerShare, discountPercentage float64) error {
	if providerShare < 0 || seekerShare < 0 || discountPercentage < 0 {
		return fmt.Errorf("percentages must be non-negative")
	}
	if providerShare+seekerShare > 100 {
		return fmt.Errorf("provider + seeker share must not exceed 100, got %.2f", providerShare+seekerShare)
	}
	return nil
}

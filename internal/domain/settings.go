package domain

import "time"

// SettingsKeyAdminConfig is the single settings document the admin panel edits.
const SettingsKeyAdminConfig = "admin_config"

// Settings is a keyed JSON document for simple configuration storage.
type Settings struct {
	Key       string
	Value     map[string]any
	UpdatedAt time.Time
}

// DefaultAdminSettings returns the values served before an admin ever saves.
func DefaultAdminSettings() map[string]any {
	return map[string]any{
		"revenue_split": map[string]any{"provider": 80, "seeker": 20, "platform": 0},
		"discounts":     map[string]any{"global_discount": 0, "category_wise": false},
	}
}

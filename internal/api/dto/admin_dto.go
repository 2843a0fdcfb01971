package dto

import (
	"time"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
)

// AdminResponse is the public view of an admin account.
type AdminResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAdminResponse maps a domain admin.
func NewAdminResponse(a *domain.Admin) *AdminResponse {
	if a == nil {
		return nil
	}
	return &AdminResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}

// AdminLoginResponse is returned from the admin login endpoint.
type AdminLoginResponse struct {
	Admin       *AdminResponse `json:"admin"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	TokenType   string         `json:"token_type"`
}

// DashboardResponse aggregates back-office stats.
type DashboardResponse struct {
	UserCount     int64           `json:"user_count"`
	CategoryCount int64           `json:"category_count"`
	FakeUserCount int64           `json:"fake_user_count"`
	RecentUsers   []*UserResponse `json:"recent_users"`
	Since         time.Time       `json:"since"`
}

// NewDashboardResponse maps a service dashboard.
func NewDashboardResponse(d *service.Dashboard, baseURL string) *DashboardResponse {
	resp := &DashboardResponse{
		UserCount:     d.UserCount,
		CategoryCount: d.CategoryCount,
		FakeUserCount: d.FakeUserCount,
		RecentUsers:   make([]*UserResponse, 0, len(d.RecentUsers)),
		Since:         d.Since,
	}
	for _, u := range d.RecentUsers {
		resp.RecentUsers = append(resp.RecentUsers, NewUserResponse(u, baseURL))
	}
	return resp
}

// FakeUserResponse is the public view of a generated account.
type FakeUserResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	City           string    `json:"city"`
	TargetAudience string    `json:"target_audience"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewFakeUserResponse maps a domain fake user.
func NewFakeUserResponse(fu *domain.FakeUser) *FakeUserResponse {
	if fu == nil {
		return nil
	}
	return &FakeUserResponse{
		ID:             fu.ID,
		Name:           fu.Name,
		Email:          fu.Email,
		City:           fu.City,
		TargetAudience: fu.TargetAudience,
		Status:         string(fu.Status),
		CreatedAt:      fu.CreatedAt,
	}
}

// NewFakeUserResponseList maps a slice of fake users.
func NewFakeUserResponseList(items []domain.FakeUser) []*FakeUserResponse {
	out := make([]*FakeUserResponse, 0, len(items))
	for i := range items {
		out = append(out, NewFakeUserResponse(&items[i]))
	}
	return out
}

// FakeUserListResponse is a paged list of fake users.
type FakeUserListResponse struct {
	Items []*FakeUserResponse `json:"items"`
	Total int64               `json:"total"`
}

// GenerateFakeUsersRequest payload.
type GenerateFakeUsersRequest struct {
	City           string `json:"city"`
	TargetAudience string `json:"target_audience"`
	Number         int    `json:"number"`
}

// FakeUserStatusRequest payload for status updates by email.
type FakeUserStatusRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ImportFakeUsersResponse summarizes a CSV import.
type ImportFakeUsersResponse struct {
	CreatedCount int                  `json:"created_count"`
	Created      []*FakeUserResponse  `json:"created"`
	Skipped      []service.SkippedRow `json:"skipped"`
}

// NewImportFakeUsersResponse maps a service import result.
func NewImportFakeUsersResponse(result *service.ImportResult) *ImportFakeUsersResponse {
	skipped := result.Skipped
	if skipped == nil {
		skipped = []service.SkippedRow{}
	}
	return &ImportFakeUsersResponse{
		CreatedCount: len(result.Created),
		Created:      NewFakeUserResponseList(result.Created),
		Skipped:      skipped,
	}
}

// UpdateSettingsRequest payload.
type UpdateSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

// SettingsResponse carries the admin settings document.
type SettingsResponse struct {
	Settings map[string]any `json:"settings"`
}

// CitiesResponse lists allowed cities per country.
type CitiesResponse struct {
	Countries []domain.CountryCities `json:"countries"`
}

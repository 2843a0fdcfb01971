package dto

import (
	"strings"
	"time"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID           int64     `json:"id"`
	UID          *string   `json:"uid,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	City         *string   `json:"city,omitempty"`
	Languages    []string  `json:"languages"`
	Interests    []string  `json:"interests"`
	LoginType    string    `json:"login_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user, qualifying relative image paths
// against the service base URL.
func NewUserResponse(u *domain.User, baseURL string) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:        u.ID,
		UID:       u.UID,
		Name:      u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Bio:       u.Bio,
		City:      u.City,
		Languages: u.Languages,
		Interests: u.Interests,
		LoginType: string(u.LoginType),
		CreatedAt: u.CreatedAt,
	}
	if resp.Languages == nil {
		resp.Languages = []string{}
	}
	if resp.Interests == nil {
		resp.Interests = []string{}
	}
	if u.ProfileImage != nil {
		full := QualifyImageURL(*u.ProfileImage, baseURL)
		resp.ProfileImage = &full
	}
	return resp
}

// NewUserResponseList maps a slice of domain users.
func NewUserResponseList(users []domain.User, baseURL string) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i], baseURL))
	}
	return out
}

// QualifyImageURL prefixes relative media paths with the base URL. Absolute
// URLs pass through untouched.
func QualifyImageURL(path, baseURL string) string {
	if path == "" || baseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// GetProfileRequest payload.
type GetProfileRequest struct {
	Email string `json:"email"`
}

// UpdateProfileRequest payload. Absent fields are left unchanged.
type UpdateProfileRequest struct {
	Name         *string  `json:"name"`
	Mobile       *string  `json:"mobile"`
	Bio          *string  `json:"bio"`
	City         *string  `json:"city"`
	ProfileImage *string  `json:"profile_image"`
	Languages    []string `json:"languages"`
	Interests    []string `json:"interests"`
}

// UpdateProfileResponse reports the saved profile and whether anything changed.
type UpdateProfileResponse struct {
	User    *UserResponse `json:"user"`
	Updated bool          `json:"updated"`
}

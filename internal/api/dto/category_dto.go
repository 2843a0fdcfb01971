package dto

import (
	"time"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/service"
)

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Image              *string   `json:"image,omitempty"`
	Latitude           *float64  `json:"latitude"`
	Longitude          *float64  `json:"longitude"`
	Tags               []string  `json:"tags"`
	ProviderShare      float64   `json:"provider_share"`
	SeekerShare        float64   `json:"seeker_share"`
	DiscountPercentage float64   `json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(c *domain.Category, baseURL string) *CategoryResponse {
	if c == nil {
		return nil
	}
	resp := &CategoryResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Latitude:           c.Latitude,
		Longitude:          c.Longitude,
		Tags:               c.Tags,
		ProviderShare:      c.ProviderShare,
		SeekerShare:        c.SeekerShare,
		DiscountPercentage: c.DiscountPercentage,
		CreatedAt:          c.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if c.Image != nil {
		full := QualifyImageURL(*c.Image, baseURL)
		resp.Image = &full
	}
	return resp
}

// NewCategoryResponseList maps a slice of categories.
func NewCategoryResponseList(categories []domain.Category, baseURL string) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i], baseURL))
	}
	return out
}

// CategoryListResponse is a paged list of categories.
type CategoryListResponse struct {
	Items []*CategoryResponse `json:"items"`
	Total int64               `json:"total"`
}

// CreateCategoryRequest payload.
type CreateCategoryRequest struct {
	Name               string   `json:"name"`
	Image              *string  `json:"image"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Tags               []string `json:"tags"`
	ProviderShare      float64  `json:"provider_share"`
	SeekerShare        float64  `json:"seeker_share"`
	DiscountPercentage float64  `json:"discount_percentage"`
}

// UpdateCategoryRequest payload. Absent fields keep their stored value.
type UpdateCategoryRequest struct {
	Name               *string  `json:"name"`
	Image              *string  `json:"image"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Tags               []string `json:"tags"`
	ProviderShare      *float64 `json:"provider_share"`
	SeekerShare        *float64 `json:"seeker_share"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

// NearestCategoryRequest payload. Radius is optional.
type NearestCategoryRequest struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	RadiusKm  *float64 `json:"radius_km"`
}

// CategoryDistanceResponse pairs a category with its rounded distance.
type CategoryDistanceResponse struct {
	Category   *CategoryResponse `json:"category"`
	DistanceKm float64           `json:"distance_km"`
}

// NearestCategoryResponse carries the three possible outcomes of a nearest
// lookup: matches found, nothing within radius (with the full sorted list as
// candidates), or no categories at all.
type NearestCategoryResponse struct {
	Outcome    string                      `json:"outcome"`
	Matches    []*CategoryDistanceResponse `json:"matches"`
	Candidates []*CategoryDistanceResponse `json:"candidates,omitempty"`
}

// NewNearestCategoryResponse maps a service nearest result.
func NewNearestCategoryResponse(result *service.NearestResult, baseURL string) *NearestCategoryResponse {
	mapList := func(items []service.CategoryDistance) []*CategoryDistanceResponse {
		out := make([]*CategoryDistanceResponse, 0, len(items))
		for i := range items {
			out = append(out, &CategoryDistanceResponse{
				Category:   NewCategoryResponse(&items[i].Category, baseURL),
				DistanceKm: items[i].DistanceKm,
			})
		}
		return out
	}
	return &NearestCategoryResponse{
		Outcome:    string(result.Outcome),
		Matches:    mapList(result.Matches),
		Candidates: mapList(result.Candidates),
	}
}

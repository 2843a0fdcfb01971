package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

const earthRadiusKm = 6371

// NearestOutcome is the explicit three-way result of a nearest query.
type NearestOutcome string

const (
	// NearestFound: matches carry the radius-filtered set, or the set of
	// categories tied for minimum distance when no radius was given.
	NearestFound NearestOutcome = "found"
	// NearestNoneInRadius: no category within the requested radius; the
	// full sorted candidate list is still returned so callers can offer
	// nearby alternatives.
	NearestNoneInRadius NearestOutcome = "none_in_radius"
	// NearestNoCategories: no categories exist, or none carry an anchor
	// point. Distinct from a radius miss.
	NearestNoCategories NearestOutcome = "no_categories"
)

// CategoryDistance pairs a category with its distance from the query point,
// rounded to two decimals.
type CategoryDistance struct {
	Category   domain.Category
	DistanceKm float64
}

// NearestResult is the outcome of a nearest-category query.
type NearestResult struct {
	Outcome    NearestOutcome
	Matches    []CategoryDistance
	Candidates []CategoryDistance
}

// CategoryService owns category CRUD, bootstrap seeding and the
// geolocation-based nearest lookup.
type CategoryService struct {
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCategoryService builds the service.
func NewCategoryService(categories repository.CategoryRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, dispatcher: dispatcher, logger: logger}
}

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

func roundKm(d float64) float64 {
	return math.Round(d*100) / 100
}

// Nearest computes distances from the query point to every category with an
// anchor. With a positive radius it returns the radius-filtered set; without
// one it returns all categories tied for minimum distance. Distances are
// reported rounded to two decimals, and ties compare the rounded values.
func (s *CategoryService) Nearest(ctx context.Context, lat, lon float64, radiusKm *float64) (*NearestResult, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(categories) == 0 {
		return &NearestResult{Outcome: NearestNoCategories}, nil
	}

	candidates := make([]CategoryDistance, 0, len(categories))
	for _, cat := range categories {
		if !cat.HasAnchor() {
			continue
		}
		dist := Haversine(lat, lon, *cat.Latitude, *cat.Longitude)
		candidates = append(candidates, CategoryDistance{Category: cat, DistanceKm: roundKm(dist)})
	}
	if len(candidates) == 0 {
		return &NearestResult{Outcome: NearestNoCategories}, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	if radiusKm != nil && *radiusKm > 0 {
		var matches []CategoryDistance
		for _, cd := range candidates {
			if cd.DistanceKm <= *radiusKm {
				matches = append(matches, cd)
			}
		}
		if len(matches) == 0 {
			return &NearestResult{Outcome: NearestNoneInRadius, Candidates: candidates}, nil
		}
		return &NearestResult{Outcome: NearestFound, Matches: matches, Candidates: candidates}, nil
	}

	minDist := candidates[0].DistanceKm
	var matches []CategoryDistance
	for _, cd := range candidates {
		if cd.DistanceKm == minDist {
			matches = append(matches, cd)
		}
	}
	return &NearestResult{Outcome: NearestFound, Matches: matches, Candidates: candidates}, nil
}

// ListCategories returns a page of categories, newest first, plus the total.
func (s *CategoryService) ListCategories(ctx context.Context, offset, limit int) ([]domain.Category, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	total, err := s.categories.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	categories, err := s.categories.ListPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return categories, total, nil
}

// GetByIdentifier resolves a category by numeric id or, failing that, by
// case-insensitive name.
func (s *CategoryService) GetByIdentifier(ctx context.Context, identifier string) (*domain.Category, error) {
	var (
		cat *domain.Category
		err error
	)
	if id, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
		cat, err = s.categories.GetByID(ctx, id)
	} else {
		cat, err = s.categories.GetByName(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"identifier": identifier})
		}
		return nil, apperrors.MapError(err)
	}
	return cat, nil
}

// CreateCategoryInput carries the admin-supplied fields for a new category.
type CreateCategoryInput struct {
	Name               string
	Image              *string
	Latitude           *float64
	Longitude          *float64
	Tags               []string
	ProviderShare      float64
	SeekerShare        float64
	DiscountPercentage float64
}

// CreateCategory validates shares, enforces case-insensitive name
// uniqueness, normalizes tags and persists the category.
func (s *CategoryService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if err := domain.ValidateShares(input.ProviderShare, input.SeekerShare, input.DiscountPercentage); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if _, err := s.categories.GetByName(ctx, input.Name); err == nil {
		return nil, apperrors.NewConflict("category with this name already exists", map[string]any{"name": input.Name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	tags := NormalizeTags(input.Tags)
	if len(tags) == 0 {
		tags = FallbackTagsFromName(input.Name, domain.MaxCategoryTags)
	}

	cat := &domain.Category{
		Name:               input.Name,
		Image:              input.Image,
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Tags:               tags,
		ProviderShare:      input.ProviderShare,
		SeekerShare:        input.SeekerShare,
		DiscountPercentage: input.DiscountPercentage,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventCategoryCreated, events.CategoryCreatedPayload{
		CategoryID: cat.ID,
		Name:       cat.Name,
		Tags:       cat.Tags,
	})
	return cat, nil
}

// UpdateCategoryInput carries the partial fields for an update; nil means
// leave unchanged.
type UpdateCategoryInput struct {
	Name               *string
	Image              *string
	Latitude           *float64
	Longitude          *float64
	Tags               []string
	ProviderShare      *float64
	SeekerShare        *float64
	DiscountPercentage *float64
}

// UpdateCategory applies a partial update, re-validating the share
// invariants against the resulting values.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil && *input.Name != "" && *input.Name != cat.Name {
		if existing, err := s.categories.GetByName(ctx, *input.Name); err == nil && existing.ID != id {
			return nil, apperrors.NewConflict("another category with this name already exists", map[string]any{"name": *input.Name})
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		cat.Name = *input.Name
	}
	if input.Image != nil {
		cat.Image = input.Image
	}
	if input.Latitude != nil {
		cat.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		cat.Longitude = input.Longitude
	}
	if input.ProviderShare != nil {
		cat.ProviderShare = *input.ProviderShare
	}
	if input.SeekerShare != nil {
		cat.SeekerShare = *input.SeekerShare
	}
	if input.DiscountPercentage != nil {
		cat.DiscountPercentage = *input.DiscountPercentage
	}
	if err := domain.ValidateShares(cat.ProviderShare, cat.SeekerShare, cat.DiscountPercentage); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if input.Tags != nil {
		if len(input.Tags) > domain.MaxCategoryTags {
			return nil, apperrors.NewValidationError("too many tags", map[string]any{"max": domain.MaxCategoryTags})
		}
		cat.Tags = NormalizeTags(input.Tags)
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, apperrors.MapError(err)
	}
	return cat, nil
}

// DeleteCategory removes a category by id.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventCategoryDeleted, events.CategoryDeletedPayload{CategoryID: id})
	return nil
}

func (s *CategoryService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

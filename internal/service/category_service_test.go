package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

func ptr[T any](v T) *T { return &v }

func anchoredCategory(name string, lat, lon float64) domain.Category {
	return domain.Category{
		Name:          name,
		Latitude:      ptr(lat),
		Longitude:     ptr(lon),
		ProviderShare: 80,
		SeekerShare:   20,
	}
}

func newTestCategoryService(seed ...domain.Category) (*CategoryService, *memCategoryRepo) {
	repo := newMemCategoryRepo(seed...)
	return NewCategoryService(repo, events.NewInMemoryDispatcher(), zap.NewNop()), repo
}

func TestHaversineKnownDistance(t *testing.T) {
	// London to Paris, great-circle.
	d := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 343.5, d, 1.0)

	assert.Zero(t, Haversine(10, 20, 10, 20))
}

func TestNearestPicksClosest(t *testing.T) {
	svc, _ := newTestCategoryService(
		anchoredCategory("Near", 0.1, 0),
		anchoredCategory("Far", 10, 10),
	)

	result, err := svc.Nearest(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, NearestFound, result.Outcome)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Near", result.Matches[0].Category.Name)
	// The full sorted list is still available.
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "Near", result.Candidates[0].Category.Name)
	assert.Equal(t, "Far", result.Candidates[1].Category.Name)
}

func TestNearestTieOnRoundedDistance(t *testing.T) {
	// Two categories at the same point are an exact tie; both come back.
	svc, _ := newTestCategoryService(
		anchoredCategory("East", 0, 0.5),
		anchoredCategory("West", 0, -0.5),
		anchoredCategory("Far", 30, 30),
	)

	result, err := svc.Nearest(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, NearestFound, result.Outcome)
	require.Len(t, result.Matches, 2)
	names := []string{result.Matches[0].Category.Name, result.Matches[1].Category.Name}
	assert.ElementsMatch(t, []string{"East", "West"}, names)
}

func TestNearestRadiusFilter(t *testing.T) {
	svc, _ := newTestCategoryService(
		anchoredCategory("Near", 0.1, 0), // ~11 km from origin
		anchoredCategory("Far", 10, 10),
	)

	result, err := svc.Nearest(context.Background(), 0, 0, ptr(50.0))
	require.NoError(t, err)
	assert.Equal(t, NearestFound, result.Outcome)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "Near", result.Matches[0].Category.Name)
}

func TestNearestNoneInRadiusKeepsCandidates(t *testing.T) {
	svc, _ := newTestCategoryService(
		anchoredCategory("A", 10, 10),
		anchoredCategory("B", 20, 20),
	)

	result, err := svc.Nearest(context.Background(), 0, 0, ptr(5.0))
	require.NoError(t, err)
	assert.Equal(t, NearestNoneInRadius, result.Outcome)
	assert.Empty(t, result.Matches)
	// A radius miss still reports the full sorted list.
	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "A", result.Candidates[0].Category.Name)
	assert.LessOrEqual(t, result.Candidates[0].DistanceKm, result.Candidates[1].DistanceKm)
}

func TestNearestNoCategories(t *testing.T) {
	svc, _ := newTestCategoryService()

	result, err := svc.Nearest(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, NearestNoCategories, result.Outcome)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Candidates)
}

func TestNearestIgnoresUnanchored(t *testing.T) {
	unanchored := domain.Category{Name: "Anywhere", ProviderShare: 80, SeekerShare: 20}
	svc, _ := newTestCategoryService(unanchored)

	result, err := svc.Nearest(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	// Only unanchored categories exist: same as having none.
	assert.Equal(t, NearestNoCategories, result.Outcome)
}

func TestNearestDistancesRounded(t *testing.T) {
	svc, _ := newTestCategoryService(anchoredCategory("Spot", 0.1, 0.1))

	result, err := svc.Nearest(context.Background(), 0, 0, nil)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	d := result.Matches[0].DistanceKm
	assert.Equal(t, roundKm(d), d)
}

func TestCreateCategoryValidatesShares(t *testing.T) {
	svc, _ := newTestCategoryService()

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name: "Broken", ProviderShare: 70, SeekerShare: 40,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name: "Negative", ProviderShare: -1, SeekerShare: 20,
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateCategoryNameConflict(t *testing.T) {
	svc, _ := newTestCategoryService(anchoredCategory("Pet Care", 1, 1))

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name: "pet care", ProviderShare: 80, SeekerShare: 20,
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateCategoryFallbackTags(t *testing.T) {
	svc, _ := newTestCategoryService()

	cat, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		Name: "Home Repairs and Assembly", ProviderShare: 80, SeekerShare: 20,
	})
	require.NoError(t, err)
	assert.Contains(t, cat.Tags, "home")
	assert.Contains(t, cat.Tags, "repairs")
	assert.NotContains(t, cat.Tags, "and")
}

func TestUpdateCategoryRevalidatesShares(t *testing.T) {
	svc, repo := newTestCategoryService(anchoredCategory("Transport", 1, 1))
	existing, err := repo.GetByName(context.Background(), "Transport")
	require.NoError(t, err)

	// Raising seeker share past the invariant must fail even though
	// provider share is untouched.
	_, err = svc.UpdateCategory(context.Background(), existing.ID, UpdateCategoryInput{
		SeekerShare: ptr(30.0),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	updated, err := svc.UpdateCategory(context.Background(), existing.ID, UpdateCategoryInput{
		ProviderShare: ptr(60.0),
		SeekerShare:   ptr(30.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, updated.ProviderShare)
	assert.Equal(t, 30.0, updated.SeekerShare)
}

func TestGetByIdentifier(t *testing.T) {
	svc, repo := newTestCategoryService(anchoredCategory("Sports", 1, 1))
	existing, err := repo.GetByName(context.Background(), "Sports")
	require.NoError(t, err)

	byID, err := svc.GetByIdentifier(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, byID.ID)

	byName, err := svc.GetByIdentifier(context.Background(), "sports")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, byName.ID)

	_, err = svc.GetByIdentifier(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc, _ := newTestCategoryService()

	err := svc.DeleteCategory(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSeedDefaultCategoriesIdempotent(t *testing.T) {
	svc, repo := newTestCategoryService()

	require.NoError(t, svc.SeedDefaultCategories(context.Background()))
	first, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Positive(t, first)

	require.NoError(t, svc.SeedDefaultCategories(context.Background()))
	second, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

type seedCategory struct {
	name     string
	image    string
	lat, lon float64
	tags     []string
}

// Default marketplace categories inserted on first boot. Several share
// seed coordinates on purpose so nearest-lookup ties are exercised by
// real data.
var defaultCategories = []seedCategory{
	{"Pet Care", "/static/icons/pet.png", 40.7128, -74.0060,
		[]string{"dog sitter", "pet care", "dog walking", "pet sitting"}},
	{"Childcare", "/static/icons/childcare.png", 34.0522, -118.2437,
		[]string{"baby sitter", "childcare", "babysitting", "child supervision"}},
	{"Household Maintenance", "/static/icons/house.png", 51.5074, -0.1278,
		[]string{"house chores", "cleaning", "ironing", "household fixes", "home maintenance"}},
	{"Academic Support", "/static/icons/academic.png", 35.6895, 139.6917,
		[]string{"school tutoring", "academic support", "math tutoring", "english tutoring", "education"}},
	{"Home Repairs and Assembly", "/static/icons/repairs.png", 48.8566, 2.3522,
		[]string{"small jobs", "plumbing", "electrician", "furniture assembly", "home repairs"}},
	{"Elderly Care", "/static/icons/elderly.png", 37.7749, -122.4194,
		[]string{"elderly assistance", "senior care", "companionship", "errands", "medication help"}},
	{"Moving Services", "/static/icons/moving.png", 55.7558, 37.6173,
		[]string{"moving help", "furniture moving", "box moving", "relocation assistance"}},
	{"Language Services", "/static/icons/language.png", -33.8688, 151.2093,
		[]string{"translations", "document translation", "cv translation", "language services"}},
	{"Transport", "/static/icons/transport.png", -23.5505, -46.6333,
		[]string{"transportation", "delivery services", "logistics", "shipping", "cargo"}},
	{"Sports", "/static/icons/sports.png", 25.276987, 55.296249,
		[]string{"sports activities", "fitness", "team sports", "sports events", "training"}},
	{"Keep Company", "/static/icons/company.png", 35.6762, 139.6503,
		[]string{"companionship", "social support", "elderly companionship", "friend services", "conversation"}},
	{"Find a Ride", "/static/icons/ride.png", 45.4642, 9.1900,
		[]string{"ride sharing", "carpool", "taxi services", "transportation booking", "travel assistance"}},
}

// SeedDefaultCategories inserts the default category set, skipping any name
// that already exists. Safe to run on every startup.
func (s *CategoryService) SeedDefaultCategories(ctx context.Context) error {
	seeded := 0
	for _, seed := range defaultCategories {
		if _, err := s.categories.GetByName(ctx, seed.name); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		image := seed.image
		lat, lon := seed.lat, seed.lon
		cat := &domain.Category{
			Name:          seed.name,
			Image:         &image,
			Latitude:      &lat,
			Longitude:     &lon,
			Tags:          seed.tags,
			ProviderShare: 80,
			SeekerShare:   20,
		}
		if err := s.categories.Create(ctx, cat); err != nil {
			return err
		}
		seeded++
	}
	if seeded > 0 {
		s.logger.Info("seeded default categories", zap.Int("count", seeded))
	}
	return nil
}

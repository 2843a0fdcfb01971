package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// ProfileService reads and edits user profiles.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// GetByEmail fetches a user's profile by email.
func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns every registered user, newest first.
func (s *ProfileService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetByID fetches a user by numeric id.
func (s *ProfileService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateProfileInput carries partial profile edits; nil leaves a field
// unchanged.
type UpdateProfileInput struct {
	Name         *string
	Mobile       *string
	Bio          *string
	ProfileImage *string
	City         *string
	Languages    []string
	Interests    []string
}

// UpdateProfile applies a partial edit to the given user's profile and
// returns the updated record. Returns the unchanged record when no field
// was supplied.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.User, bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, false, apperrors.MapError(err)
	}

	updated := false
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
		updated = true
	}
	if input.Mobile != nil && *input.Mobile != "" {
		user.Mobile = *input.Mobile
		updated = true
	}
	if input.Bio != nil {
		user.Bio = input.Bio
		updated = true
	}
	if input.ProfileImage != nil {
		user.ProfileImage = input.ProfileImage
		updated = true
	}
	if input.City != nil {
		user.City = input.City
		updated = true
	}
	if input.Languages != nil {
		user.Languages = dedupeStrings(input.Languages)
		updated = true
	}
	if input.Interests != nil {
		user.Interests = dedupeStrings(input.Interests)
		updated = true
	}

	if !updated {
		return user, false, nil
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	return user, true, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

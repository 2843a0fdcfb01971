package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CoaxnTechnology/Betogether-API/internal/auth"
	"github.com/CoaxnTechnology/Betogether-API/internal/config"
	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

// TokenPair bundles the user access and refresh credentials issued at
// registration and login.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration, login, token refresh and guest
// session flows for users and admins.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	AdminRepo  repository.AdminRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, auth.TokenTTLs{
			UserAccess:  cfg.AccessTokenTTL(),
			UserRefresh: cfg.RefreshTokenTTL(),
			Guest:       cfg.GuestTokenTTL(),
			Admin:       cfg.AdminTokenTTL(),
		}),
		bcryptCost: cfg.BcryptCost,
	}
}

func (s *AuthService) issueUserPair(email string) (*TokenPair, error) {
	access, accessExp, err := s.tokenMgr.Issue(domain.TokenKindUserAccess, email, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	refresh, refreshExp, err := s.tokenMgr.Issue(domain.TokenKindUserRefresh, email, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// RegisterUserInput carries the registration payload.
type RegisterUserInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// RegisterUser creates a new user account and issues a token pair.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, *TokenPair, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: hash,
		RegisterType: domain.RegisterTypeManual,
		LoginType:    domain.RegisterTypeManual,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	pair, err := s.issueUserPair(user.Email)
	if err != nil {
		return nil, nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserRegistered,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{UserID: user.ID, Email: user.Email, Name: user.Name},
		})
	}
	return user, pair, nil
}

// LoginUser authenticates a user by email/password and issues a token pair.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issueUserPair(user.Email)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshUserToken exchanges a valid refresh token for a fresh access token.
// Any other token kind is rejected.
func (s *AuthService) RefreshUserToken(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.Decode(refreshToken, domain.TokenKindUserRefresh)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid or expired refresh token")
	}

	// Confirm the account still exists before minting a new credential.
	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("user not found")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}

	access, exp, err := s.tokenMgr.Issue(domain.TokenKindUserAccess, user.Email, "")
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return access, exp, nil
}

// StartGuestSession mints an ephemeral guest token. No record is stored.
func (s *AuthService) StartGuestSession() (token string, guestID string, exp time.Time, err error) {
	token, guestID, exp, err = s.tokenMgr.IssueGuest()
	if err != nil {
		return "", "", time.Time{}, apperrors.MapError(err)
	}
	return token, guestID, exp, nil
}

// LoginAdmin authenticates an admin and issues a role-bearing admin token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Issue(domain.TokenKindAdmin, admin.Email, string(admin.Role))
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return admin, token, exp, nil
}

// CreateAdmin registers a new back-office operator account.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string, role domain.AdminRole) (*domain.Admin, error) {
	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("admin already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	admin := &domain.Admin{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, apperrors.MapError(err)
	}
	return admin, nil
}

// TokenManager exposes the underlying token manager for the gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	"github.com/CoaxnTechnology/Betogether-API/internal/repository"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

const (
	maxFakeUserGenerate = 200
	maxImportRows       = 5000
	fakeEmailDomain     = "fake.betogether.com"
)

// AdminService backs the admin panel: dashboard aggregates, fake-user
// management, settings storage and CSV export/import.
type AdminService struct {
	users      repository.UserRepository
	fakeUsers  repository.FakeUserRepository
	categories repository.CategoryRepository
	settings   repository.SettingsRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AdminDependencies encapsulates repo requirements for the admin service.
type AdminDependencies struct {
	UserRepo     repository.UserRepository
	FakeUserRepo repository.FakeUserRepository
	CategoryRepo repository.CategoryRepository
	SettingsRepo repository.SettingsRepository
	Dispatcher   events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		fakeUsers:  deps.FakeUserRepo,
		categories: deps.CategoryRepo,
		settings:   deps.SettingsRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Dashboard aggregates entity counts and recent registrations.
type Dashboard struct {
	UserCount     int64
	CategoryCount int64
	FakeUserCount int64
	RecentUsers   []*domain.User
	Since         time.Time
}

// GetDashboard summarizes activity over the trailing window.
func (s *AdminService) GetDashboard(ctx context.Context, days int) (*Dashboard, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	fakeUserCount, err := s.fakeUsers.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	recent, err := s.users.ListRecent(ctx, since, 10)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &Dashboard{
		UserCount:     userCount,
		CategoryCount: categoryCount,
		FakeUserCount: fakeUserCount,
		RecentUsers:   recent,
		Since:         since,
	}, nil
}

// ListFakeUsers returns a page of generated accounts plus the total.
func (s *AdminService) ListFakeUsers(ctx context.Context, offset, limit int) ([]domain.FakeUser, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	total, err := s.fakeUsers.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	items, err := s.fakeUsers.ListPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return items, total, nil
}

func fakeEmailFromName(name string) string {
	local := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ':
			return '.'
		default:
			return -1
		}
	}, name)
	if len(local) > 40 {
		local = local[:40]
	}
	return fmt.Sprintf("%s%d@%s", local, gofakeit.Number(1, 9999), fakeEmailDomain)
}

// GenerateFakeUsers creates count synthetic accounts in an allowed city.
func (s *AdminService) GenerateFakeUsers(ctx context.Context, city, targetAudience string, count int) ([]domain.FakeUser, error) {
	if count <= 0 || count > maxFakeUserGenerate {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("number must be between 1 and %d", maxFakeUserGenerate), nil)
	}
	canonical, ok := domain.CityAllowed(city)
	if !ok {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("city %q is not allowed", city), nil)
	}

	created := make([]domain.FakeUser, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		fu := &domain.FakeUser{
			Name:           name,
			Email:          fakeEmailFromName(name),
			City:           canonical,
			TargetAudience: targetAudience,
			Status:         domain.FakeUserStatusActive,
		}
		if err := s.fakeUsers.Create(ctx, fu); err != nil {
			return nil, apperrors.MapError(err)
		}
		created = append(created, *fu)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventFakeUsersGenerated,
			Timestamp: time.Now(),
			Payload:   events.FakeUsersGeneratedPayload{City: canonical, Count: len(created)},
		})
	}
	return created, nil
}

// SetFakeUserStatus updates a generated account's status by email.
func (s *AdminService) SetFakeUserStatus(ctx context.Context, email string, status domain.FakeUserStatus) (*domain.FakeUser, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	switch status {
	case domain.FakeUserStatusActive, domain.FakeUserStatusBlocked:
	default:
		return nil, apperrors.NewValidationError("status must be 'active' or 'blocked'", nil)
	}

	fu, err := s.fakeUsers.UpdateStatusByEmail(ctx, email, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("fake user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return fu, nil
}

// SkippedRow explains why a CSV row was not imported.
type SkippedRow struct {
	Row    int    `json:"row"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a fake-user CSV import. Rejected rows are
// reported, never silently dropped.
type ImportResult struct {
	Created []domain.FakeUser
	Skipped []SkippedRow
}

// ImportFakeUsers reads a CSV (name,email,city,target_audience) and creates
// fake users, skipping duplicate emails both within the file and against the
// existing user and fake-user tables.
func (s *AdminService) ImportFakeUsers(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewValidationError("failed to read CSV header", map[string]any{"error": err.Error()})
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(record []string, names ...string) string {
		for _, name := range names {
			if idx, ok := col[name]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
		}
		return ""
	}

	result := &ImportResult{}
	seen := make(map[string]struct{})
	rowNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError("malformed CSV row", map[string]any{"row": rowNum + 1, "error": err.Error()})
		}
		rowNum++
		if rowNum > maxImportRows {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("too many rows in CSV (limit %d)", maxImportRows), nil)
		}

		name := field(record, "name", "full_name")
		if name == "" {
			name = gofakeit.Name()
		}
		email := field(record, "email")
		if email == "" {
			email = fakeEmailFromName(name)
		}
		emailKey := strings.ToLower(email)

		if _, dup := seen[emailKey]; dup {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Email: email, Reason: "duplicate-in-file"})
			continue
		}
		seen[emailKey] = struct{}{}

		exists := false
		if _, err := s.fakeUsers.GetByEmail(ctx, email); err == nil {
			exists = true
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		if !exists {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				exists = true
			} else if !errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.MapError(err)
			}
		}
		if exists {
			result.Skipped = append(result.Skipped, SkippedRow{Row: rowNum, Email: email, Reason: "email-exists"})
			continue
		}

		city := field(record, "city", "city_name")
		if city == "" {
			city = "Barcelona"
		}
		if canonical, ok := domain.CityAllowed(city); ok {
			city = canonical
		}

		target := field(record, "target_audience", "audience")
		if target == "" {
			target = "tourists"
		}

		fu := &domain.FakeUser{
			Name:           name,
			Email:          email,
			City:           city,
			TargetAudience: target,
			Status:         domain.FakeUserStatusActive,
		}
		if err := s.fakeUsers.Create(ctx, fu); err != nil {
			return nil, apperrors.MapError(err)
		}
		result.Created = append(result.Created, *fu)
	}

	s.logger.Info("fake user import complete",
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// ExportFakeUsersCSV streams all fake users as CSV.
func (s *AdminService) ExportFakeUsersCSV(ctx context.Context, w io.Writer) error {
	items, err := s.fakeUsers.ListAll(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "email", "city", "target_audience", "status", "created_at"}); err != nil {
		return apperrors.MapError(err)
	}
	for _, fu := range items {
		record := []string{
			fmt.Sprintf("%d", fu.ID),
			fu.Name,
			fu.Email,
			fu.City,
			fu.TargetAudience,
			string(fu.Status),
			fu.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.MapError(err)
		}
	}
	writer.Flush()
	return apperrors.MapError(writer.Error())
}

// ExportUsersCSV streams all registered users as CSV.
func (s *AdminService) ExportUsersCSV(ctx context.Context, w io.Writer) error {
	users, err := s.users.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "email", "city", "login_type", "created_at"}); err != nil {
		return apperrors.MapError(err)
	}
	for _, u := range users {
		city := ""
		if u.City != nil {
			city = *u.City
		}
		record := []string{
			fmt.Sprintf("%d", u.ID),
			u.Name,
			u.Email,
			city,
			string(u.LoginType),
			u.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.MapError(err)
		}
	}
	writer.Flush()
	return apperrors.MapError(writer.Error())
}

// ExportCategoriesCSV streams all categories as CSV. Tags are joined with
// '|' to keep the column single-valued.
func (s *AdminService) ExportCategoriesCSV(ctx context.Context, w io.Writer) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "name", "tags", "provider_share", "seeker_share", "discount_percentage", "image", "created_at"}); err != nil {
		return apperrors.MapError(err)
	}
	for _, c := range categories {
		image := ""
		if c.Image != nil {
			image = *c.Image
		}
		record := []string{
			fmt.Sprintf("%d", c.ID),
			c.Name,
			strings.Join(c.Tags, "|"),
			fmt.Sprintf("%.2f", c.ProviderShare),
			fmt.Sprintf("%.2f", c.SeekerShare),
			fmt.Sprintf("%.2f", c.DiscountPercentage),
			image,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.MapError(err)
		}
	}
	writer.Flush()
	return apperrors.MapError(writer.Error())
}

// GetSettings returns the admin settings document, falling back to defaults
// when nothing has been saved yet.
func (s *AdminService) GetSettings(ctx context.Context) (map[string]any, error) {
	row, err := s.settings.Get(ctx, domain.SettingsKeyAdminConfig)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultAdminSettings(), nil
		}
		return nil, apperrors.MapError(err)
	}
	if len(row.Value) == 0 {
		return domain.DefaultAdminSettings(), nil
	}
	return row.Value, nil
}

// UpdateSettings upserts the admin settings document.
func (s *AdminService) UpdateSettings(ctx context.Context, value map[string]any) (map[string]any, error) {
	if len(value) == 0 {
		return nil, apperrors.NewValidationError("settings payload must not be empty", nil)
	}
	row := &domain.Settings{Key: domain.SettingsKeyAdminConfig, Value: value}
	if err := s.settings.Upsert(ctx, row); err != nil {
		return nil, apperrors.MapError(err)
	}
	return row.Value, nil
}

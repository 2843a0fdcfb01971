package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/events"
	apperrors "github.com/CoaxnTechnology/Betogether-API/pkg/util/errorutil"
)

func newTestAdminService() (*AdminService, *memUserRepo, *memFakeUserRepo, *memSettingsRepo) {
	users := newMemUserRepo()
	fakeUsers := newMemFakeUserRepo()
	settings := newMemSettingsRepo()
	svc := NewAdminService(AdminDependencies{
		UserRepo:     users,
		FakeUserRepo: fakeUsers,
		CategoryRepo: newMemCategoryRepo(),
		SettingsRepo: settings,
		Dispatcher:   events.NewInMemoryDispatcher(),
	}, zap.NewNop())
	return svc, users, fakeUsers, settings
}

func TestGenerateFakeUsers(t *testing.T) {
	svc, _, fakeUsers, _ := newTestAdminService()
	ctx := context.Background()

	created, err := svc.GenerateFakeUsers(ctx, "barcelona", "tourists", 5)
	require.NoError(t, err)
	require.Len(t, created, 5)

	emails := map[string]struct{}{}
	for _, fu := range created {
		assert.NotEmpty(t, fu.Name)
		// City name is canonicalized regardless of input casing.
		assert.Equal(t, "Barcelona", fu.City)
		assert.Equal(t, domain.FakeUserStatusActive, fu.Status)
		assert.True(t, strings.HasSuffix(fu.Email, "@fake.betogether.com"), fu.Email)
		emails[fu.Email] = struct{}{}
	}
	assert.Len(t, emails, 5)

	count, err := fakeUsers.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestGenerateFakeUsersValidation(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.GenerateFakeUsers(ctx, "Barcelona", "tourists", 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.GenerateFakeUsers(ctx, "Barcelona", "tourists", maxFakeUserGenerate+1)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.GenerateFakeUsers(ctx, "Atlantis", "tourists", 3)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSetFakeUserStatus(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	created, err := svc.GenerateFakeUsers(ctx, "Milan", "locals", 1)
	require.NoError(t, err)

	updated, err := svc.SetFakeUserStatus(ctx, created[0].Email, domain.FakeUserStatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, domain.FakeUserStatusBlocked, updated.Status)

	_, err = svc.SetFakeUserStatus(ctx, created[0].Email, domain.FakeUserStatus("weird"))
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.SetFakeUserStatus(ctx, "nobody@example.com", domain.FakeUserStatusActive)
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestImportFakeUsersDedupes(t *testing.T) {
	svc, users, _, _ := newTestAdminService()
	ctx := context.Background()

	// An email already registered as a real user must be skipped.
	require.NoError(t, users.Create(ctx, &domain.User{Name: "Real", Email: "taken@example.com"}))

	csvData := strings.Join([]string{
		"name,email,city,target_audience",
		"Ann,ann@example.com,Barcelona,tourists",
		"Ann Again,ANN@example.com,Madrid,locals",
		"Taken,taken@example.com,Rome,tourists",
		"Bob,bob@example.com,Paris,students",
	}, "\n")

	result, err := svc.ImportFakeUsers(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, "ann@example.com", result.Created[0].Email)
	assert.Equal(t, "bob@example.com", result.Created[1].Email)

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 2, result.Skipped[0].Row)
	assert.Equal(t, "duplicate-in-file", result.Skipped[0].Reason)
	assert.Equal(t, 3, result.Skipped[1].Row)
	assert.Equal(t, "email-exists", result.Skipped[1].Reason)
}

func TestImportFakeUsersSecondRunSkipsExisting(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	csvData := "name,email,city,target_audience\nAnn,ann@example.com,Barcelona,tourists\n"

	first, err := svc.ImportFakeUsers(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	second, err := svc.ImportFakeUsers(ctx, strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, "email-exists", second.Skipped[0].Reason)
}

func TestImportFakeUsersFillsMissingFields(t *testing.T) {
	svc, _, _, _ := newTestAdminService()

	csvData := "name,email,city,target_audience\n,,milan,\n"
	result, err := svc.ImportFakeUsers(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.NotEmpty(t, result.Created[0].Name)
	assert.NotEmpty(t, result.Created[0].Email)
	assert.Equal(t, "Milan", result.Created[0].City)
	assert.NotEmpty(t, result.Created[0].TargetAudience)
}

func TestExportFakeUsersCSV(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	_, err := svc.GenerateFakeUsers(ctx, "Lisbon", "tourists", 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportFakeUsersCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,email,city,target_audience,status,created_at", lines[0])
	assert.Contains(t, lines[1], "Lisbon")
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	svc, _, _, _ := newTestAdminService()
	ctx := context.Background()

	// Nothing saved yet: defaults are served.
	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAdminSettings(), settings)

	saved, err := svc.UpdateSettings(ctx, map[string]any{
		"revenue_split": map[string]any{"provider": 70, "seeker": 25, "platform": 5},
	})
	require.NoError(t, err)
	assert.NotNil(t, saved)

	reloaded, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, reloaded)

	_, err = svc.UpdateSettings(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDashboardCounts(t *testing.T) {
	svc, users, _, _ := newTestAdminService()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"}))
	require.NoError(t, users.Create(ctx, &domain.User{Name: "B", Email: "b@example.com"}))
	_, err := svc.GenerateFakeUsers(ctx, "Berlin", "tourists", 3)
	require.NoError(t, err)

	dashboard, err := svc.GetDashboard(ctx, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dashboard.UserCount)
	assert.EqualValues(t, 3, dashboard.FakeUserCount)
	assert.EqualValues(t, 0, dashboard.CategoryCount)
	assert.Len(t, dashboard.RecentUsers, 2)
}

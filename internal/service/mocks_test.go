package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// In-memory repository fakes backing the service tests.

type memCategoryRepo struct {
	nextID     int64
	categories []domain.Category
}

func newMemCategoryRepo(seed ...domain.Category) *memCategoryRepo {
	repo := &memCategoryRepo{nextID: 1}
	for _, cat := range seed {
		c := cat
		_ = repo.Create(context.Background(), &c)
	}
	return repo
}

func (r *memCategoryRepo) Create(ctx context.Context, cat *domain.Category) error {
	cat.ID = r.nextID
	r.nextID++
	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}
	r.categories = append(r.categories, *cat)
	return nil
}

func (r *memCategoryRepo) Update(ctx context.Context, cat *domain.Category) error {
	for i := range r.categories {
		if r.categories[i].ID == cat.ID {
			r.categories[i] = *cat
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memCategoryRepo) Delete(ctx context.Context, id int64) error {
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	for i := range r.categories {
		if r.categories[i].ID == id {
			cat := r.categories[i]
			return &cat, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for i := range r.categories {
		if strings.EqualFold(r.categories[i].Name, name) {
			cat := r.categories[i]
			return &cat, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *memCategoryRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	if offset >= len(r.categories) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.categories) {
		end = len(r.categories)
	}
	out := make([]domain.Category, end-offset)
	copy(out, r.categories[offset:end])
	return out, nil
}

func (r *memCategoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.categories)), nil
}

type memUserRepo struct {
	nextID int64
	users  []*domain.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{nextID: 1} }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			clone := *user
			clone.UpdatedAt = time.Now()
			r.users[i] = &clone
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return append([]*domain.User{}, r.users...), nil
}

func (r *memUserRepo) ListRecent(ctx context.Context, since time.Time, limit int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.CreatedAt.After(since) || u.CreatedAt.Equal(since) {
			out = append(out, u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memAdminRepo struct {
	nextID int64
	admins []*domain.Admin
}

func newMemAdminRepo() *memAdminRepo { return &memAdminRepo{nextID: 1} }

func (r *memAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = r.nextID
	r.nextID++
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	clone := *admin
	r.admins = append(r.admins, &clone)
	return nil
}

func (r *memAdminRepo) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memFakeUserRepo struct {
	nextID    int64
	fakeUsers []domain.FakeUser
}

func newMemFakeUserRepo() *memFakeUserRepo { return &memFakeUserRepo{nextID: 1} }

func (r *memFakeUserRepo) Create(ctx context.Context, fu *domain.FakeUser) error {
	fu.ID = r.nextID
	r.nextID++
	fu.CreatedAt = time.Now()
	r.fakeUsers = append(r.fakeUsers, *fu)
	return nil
}

func (r *memFakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.FakeUser, error) {
	for i := range r.fakeUsers {
		if strings.EqualFold(r.fakeUsers[i].Email, email) {
			fu := r.fakeUsers[i]
			return &fu, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memFakeUserRepo) ListPage(ctx context.Context, offset, limit int) ([]domain.FakeUser, error) {
	if offset >= len(r.fakeUsers) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.fakeUsers) {
		end = len(r.fakeUsers)
	}
	out := make([]domain.FakeUser, end-offset)
	copy(out, r.fakeUsers[offset:end])
	return out, nil
}

func (r *memFakeUserRepo) ListAll(ctx context.Context) ([]domain.FakeUser, error) {
	out := make([]domain.FakeUser, len(r.fakeUsers))
	copy(out, r.fakeUsers)
	return out, nil
}

func (r *memFakeUserRepo) UpdateStatusByEmail(ctx context.Context, email string, status domain.FakeUserStatus) (*domain.FakeUser, error) {
	for i := range r.fakeUsers {
		if strings.EqualFold(r.fakeUsers[i].Email, email) {
			r.fakeUsers[i].Status = status
			fu := r.fakeUsers[i]
			return &fu, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memFakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.fakeUsers)), nil
}

type memSettingsRepo struct {
	rows map[string]*domain.Settings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{rows: map[string]*domain.Settings{}}
}

func (r *memSettingsRepo) Get(ctx context.Context, key string) (*domain.Settings, error) {
	if row, ok := r.rows[key]; ok {
		clone := *row
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memSettingsRepo) Upsert(ctx context.Context, settings *domain.Settings) error {
	settings.UpdatedAt = time.Now()
	clone := *settings
	r.rows[settings.Key] = &clone
	return nil
}

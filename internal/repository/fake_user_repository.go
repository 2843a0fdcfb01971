package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// FakeUserRepository defines persistence access for generated test accounts.
type FakeUserRepository interface {
	Create(ctx context.Context, fakeUser *domain.FakeUser) error
	GetByEmail(ctx context.Context, email string) (*domain.FakeUser, error)
	ListPage(ctx context.Context, offset, limit int) ([]domain.FakeUser, error)
	ListAll(ctx context.Context) ([]domain.FakeUser, error)
	UpdateStatusByEmail(ctx context.Context, email string, status domain.FakeUserStatus) (*domain.FakeUser, error)
	Count(ctx context.Context) (int64, error)
}

type fakeUserRepository struct {
	pool *pgxpool.Pool
}

// NewFakeUserRepository returns a Postgres-backed implementation.
func NewFakeUserRepository(pool *pgxpool.Pool) FakeUserRepository {
	return &fakeUserRepository{pool: pool}
}

const fakeUserColumns = `id, name, email, city, target_audience, status, created_at`

func scanFakeUser(row pgx.Row) (domain.FakeUser, error) {
	var fu domain.FakeUser
	err := row.Scan(
		&fu.ID,
		&fu.Name,
		&fu.Email,
		&fu.City,
		&fu.TargetAudience,
		&fu.Status,
		&fu.CreatedAt,
	)
	return fu, err
}

func (r *fakeUserRepository) Create(ctx context.Context, fakeUser *domain.FakeUser) error {
	const query = `
        INSERT INTO fake_users (name, email, city, target_audience, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		fakeUser.Name,
		fakeUser.Email,
		fakeUser.City,
		fakeUser.TargetAudience,
		fakeUser.Status,
	).Scan(&fakeUser.ID, &fakeUser.CreatedAt)
}

func (r *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*domain.FakeUser, error) {
	const query = `SELECT ` + fakeUserColumns + ` FROM fake_users WHERE lower(email)=lower($1)`
	fu, err := scanFakeUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}
	return &fu, nil
}

func (r *fakeUserRepository) list(ctx context.Context, query string, args ...any) ([]domain.FakeUser, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fakeUsers []domain.FakeUser
	for rows.Next() {
		fu, err := scanFakeUser(rows)
		if err != nil {
			return nil, err
		}
		fakeUsers = append(fakeUsers, fu)
	}
	return fakeUsers, rows.Err()
}

func (r *fakeUserRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.FakeUser, error) {
	return r.list(ctx, `SELECT `+fakeUserColumns+` FROM fake_users
        ORDER BY created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
}

func (r *fakeUserRepository) ListAll(ctx context.Context) ([]domain.FakeUser, error) {
	return r.list(ctx, `SELECT `+fakeUserColumns+` FROM fake_users ORDER BY id`)
}

func (r *fakeUserRepository) UpdateStatusByEmail(ctx context.Context, email string, status domain.FakeUserStatus) (*domain.FakeUser, error) {
	const query = `
        UPDATE fake_users SET status=$1 WHERE lower(email)=lower($2)
        RETURNING ` + fakeUserColumns

	fu, err := scanFakeUser(r.pool.QueryRow(ctx, query, status, email))
	if err != nil {
		return nil, err
	}
	return &fu, nil
}

func (r *fakeUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM fake_users`).Scan(&count)
	return count, err
}

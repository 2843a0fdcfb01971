package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
)

// CategoryRepository defines persistence access for marketplace categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	ListPage(ctx context.Context, offset, limit int) ([]domain.Category, error)
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

const categoryColumns = `id, name, image, latitude, longitude, tags,
        provider_share, seeker_share, discount_percentage, created_at`

func scanCategory(row pgx.Row) (domain.Category, error) {
	var cat domain.Category
	err := row.Scan(
		&cat.ID,
		&cat.Name,
		&cat.Image,
		&cat.Latitude,
		&cat.Longitude,
		&cat.Tags,
		&cat.ProviderShare,
		&cat.SeekerShare,
		&cat.DiscountPercentage,
		&cat.CreatedAt,
	)
	return cat, err
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, image, latitude, longitude, tags,
                                provider_share, seeker_share, discount_percentage)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		category.Name,
		category.Image,
		category.Latitude,
		category.Longitude,
		category.Tags,
		category.ProviderShare,
		category.SeekerShare,
		category.DiscountPercentage,
	).Scan(&category.ID, &category.CreatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, image=$2, latitude=$3, longitude=$4, tags=$5,
                              provider_share=$6, seeker_share=$7, discount_percentage=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		category.Name,
		category.Image,
		category.Latitude,
		category.Longitude,
		category.Tags,
		category.ProviderShare,
		category.SeekerShare,
		category.DiscountPercentage,
		category.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id=$1`
	cat, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE lower(name)=lower($1)`
	cat, err := scanCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepository) list(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC`)
}

func (r *categoryRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories
        ORDER BY created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/CoaxnTechnology/Betogether-API/internal/domain"
	"github.com/CoaxnTechnology/Betogether-API/internal/persistence"
)

const categoryListCacheKey = "categories:all"

// cachedCategoryRepository is a read-through cache for the full category
// list, which the nearest-category resolver scans on every request. Writes
// invalidate the cached list; all other reads pass straight through.
type cachedCategoryRepository struct {
	CategoryRepository
	cache  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCategoryRepository decorates a CategoryRepository with a Redis
// cache over List. A nil or unreachable cache degrades to pass-through.
func NewCachedCategoryRepository(inner CategoryRepository, cache *persistence.Redis, ttl time.Duration, logger *zap.Logger) CategoryRepository {
	return &cachedCategoryRepository{CategoryRepository: inner, cache: cache, ttl: ttl, logger: logger}
}

func (r *cachedCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if raw, err := r.cache.Get(ctx, categoryListCacheKey); err == nil {
		var categories []domain.Category
		if err := json.Unmarshal([]byte(raw), &categories); err == nil {
			return categories, nil
		}
		// corrupt entry; fall through to storage and rewrite
	}

	categories, err := r.CategoryRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(categories); err == nil {
		if err := r.cache.Set(ctx, categoryListCacheKey, string(encoded), r.ttl); err != nil {
			r.logger.Warn("category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

func (r *cachedCategoryRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, categoryListCacheKey); err != nil {
		r.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}

func (r *cachedCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := r.CategoryRepository.Create(ctx, category); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if err := r.CategoryRepository.Update(ctx, category); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedCategoryRepository) Delete(ctx context.Context, id int64) error {
	if err := r.CategoryRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/feedback-service/internal/domain"
)

const (
	// FeedbackListCacheKey prefixes the JSON snapshots of every feedback row, one key per generation.
	FeedbackListCacheKey = "feedback:all"
	// FeedbackGenerationKey is incremented by every write; snapshots of older generations are never read again.
	FeedbackGenerationKey = "feedback:gen"
)

type cachedFeedback struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Category    string                  `json:"category"`
	Status      domain.FeedbackStatus   `json:"status"`
	Priority    domain.FeedbackPriority `json:"priority"`
	CreatedAt   int64                   `json:"createdAt"`
}

// CachedFeedbackRepository serves FindAll from Redis. Snapshots are stored under the generation
// read before loading them, and every write bumps the generation, so a list loaded before a write
// can never be served after it. Redis failures are logged and the wrapped repository is used instead.
type CachedFeedbackRepository struct {
	inner  FeedbackRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedFeedbackRepository wraps inner with a Redis list cache.
func NewCachedFeedbackRepository(inner FeedbackRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedFeedbackRepository {
	return &CachedFeedbackRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *CachedFeedbackRepository) Count(ctx context.Context) (int64, error) {
	return r.inner.Count(ctx)
}

func (r *CachedFeedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	saved, err := r.inner.Save(ctx, feedback)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return saved, nil
}

func (r *CachedFeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *CachedFeedbackRepository) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	gen, err := r.client.Get(ctx, FeedbackGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Warn("feedback cache generation read failed", zap.Error(err))
		return r.inner.FindAll(ctx)
	}
	key := snapshotKey(gen)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []cachedFeedback
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return fromCached(cached), nil
		}
		r.logger.Warn("discarding unreadable feedback cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("feedback cache read failed", zap.Error(err))
	}

	items, err := r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(toCached(items))
	if err != nil {
		return items, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("feedback cache write failed", zap.Error(err))
	}
	return items, nil
}

func (r *CachedFeedbackRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.inner.ExistsByID(ctx, id)
}

func (r *CachedFeedbackRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedFeedbackRepository) invalidate(ctx context.Context) {
	if err := r.client.Incr(ctx, FeedbackGenerationKey).Err(); err != nil {
		r.logger.Warn("feedback cache invalidation failed", zap.Error(err))
	}
}

func snapshotKey(gen int64) string {
	return FeedbackListCacheKey + ":" + strconv.FormatInt(gen, 10)
}

func toCached(items []domain.Feedback) []cachedFeedback {
	out := make([]cachedFeedback, 0, len(items))
	for _, fb := range items {
		out = append(out, cachedFeedback(fb))
	}
	return out
}

func fromCached(items []cachedFeedback) []domain.Feedback {
	out := make([]domain.Feedback, 0, len(items))
	for _, c := range items {
		out = append(out, domain.Feedback(c))
	}
	return out
}

package repository

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spec-kit/feedback-service/internal/domain"
	apperrors "github.com/spec-kit/feedback-service/pkg/util/errorutil"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&FeedbackModel{}))
	return db
}

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func setupTestPostgres(t *testing.T) *pgxpool.Pool {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	if err := pool.Ping(ctx); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_create_feedback.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return pool
}

// pausingRepository parks the first FindAll after it has loaded its rows until release is closed.
type pausingRepository struct {
	FeedbackRepository
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func newPausingRepository(inner FeedbackRepository) *pausingRepository {
	return &pausingRepository{
		FeedbackRepository: inner,
		loaded:             make(chan struct{}),
		release:            make(chan struct{}),
	}
}

func (p *pausingRepository) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	items, err := p.FeedbackRepository.FindAll(ctx)
	p.once.Do(func() {
		close(p.loaded)
		<-p.release
	})
	return items, err
}

func newTestFeedback(title string, createdAt int64) *domain.Feedback {
	return &domain.Feedback{
		Title:       title,
		Description: "Test description",
		Category:    "UI",
		Status:      domain.FeedbackStatusOpen,
		Priority:    domain.FeedbackPriorityHigh,
		CreatedAt:   createdAt,
	}
}

// runRepositoryContract exercises the behavior every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) FeedbackRepository) {
	ctx := context.Background()

	t.Run("save assigns an id and count tracks inserts", func(t *testing.T) {
		repo := newRepo(t)
		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)

		in := newTestFeedback("First", 1000)
		saved, err := repo.Save(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, saved.ID)
		assert.Empty(t, in.ID, "input must not be mutated")

		other, err := repo.Save(ctx, newTestFeedback("Second", 2000))
		require.NoError(t, err)
		assert.NotEqual(t, saved.ID, other.ID)

		count, err = repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("save with an existing id overwrites every field", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(ctx, newTestFeedback("Original", 1000))
		require.NoError(t, err)

		saved.Title = "Changed"
		saved.Status = domain.FeedbackStatusResolved
		saved.Priority = domain.FeedbackPriorityLow
		_, err = repo.Save(ctx, saved)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, *saved, *found)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("find all returns every row", func(t *testing.T) {
		repo := newRepo(t)
		for i, title := range []string{"a", "b", "c"} {
			_, err := repo.Save(ctx, newTestFeedback(title, int64(i)))
			require.NoError(t, err)
		}
		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("missing ids", func(t *testing.T) {
		repo := newRepo(t)
		missing := "00000000-0000-0000-0000-000000000000"

		_, err := repo.FindByID(ctx, missing)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

		exists, err := repo.ExistsByID(ctx, missing)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, repo.DeleteByID(ctx, missing), ErrNotFound)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		repo := newRepo(t)
		saved, err := repo.Save(ctx, newTestFeedback("Doomed", 1))
		require.NoError(t, err)

		exists, err := repo.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.DeleteByID(ctx, saved.ID))
		_, err = repo.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryFeedbackRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) FeedbackRepository {
		return NewMemoryFeedbackRepository()
	})
}

func TestGormFeedbackRepository(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) FeedbackRepository {
		return NewGormFeedbackRepository(setupTestDB(t))
	})
}

func TestPostgresFeedbackRepository(t *testing.T) {
	pool := setupTestPostgres(t)
	runRepositoryContract(t, func(t *testing.T) FeedbackRepository {
		_, err := pool.Exec(context.Background(), "TRUNCATE feedback")
		require.NoError(t, err)
		return NewFeedbackRepository(pool)
	})
}

func TestCachedFeedbackRepository(t *testing.T) {
	client := setupTestRedis(t)
	runRepositoryContract(t, func(t *testing.T) FeedbackRepository {
		client.FlushDB(context.Background())
		return NewCachedFeedbackRepository(NewMemoryFeedbackRepository(), client, time.Minute, zap.NewNop())
	})

	t.Run("list is served from cache until a write", func(t *testing.T) {
		ctx := context.Background()
		client.FlushDB(ctx)
		inner := NewMemoryFeedbackRepository()
		repo := NewCachedFeedbackRepository(inner, client, time.Minute, zap.NewNop())

		_, err := repo.Save(ctx, newTestFeedback("Cached", 1))
		require.NoError(t, err)
		first, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)

		// bypass the decorator so the cached snapshot goes stale
		_, err = inner.Save(ctx, newTestFeedback("Hidden", 2))
		require.NoError(t, err)
		stale, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, stale, 1)
		assert.Equal(t, first[0], stale[0])

		_, err = repo.Save(ctx, newTestFeedback("Visible", 3))
		require.NoError(t, err)
		fresh, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, fresh, 3)
	})

	t.Run("a list loaded before a write is never served after it", func(t *testing.T) {
		ctx := context.Background()
		client.FlushDB(ctx)
		inner := newPausingRepository(NewMemoryFeedbackRepository())
		repo := NewCachedFeedbackRepository(inner, client, time.Minute, zap.NewNop())

		_, err := repo.Save(ctx, newTestFeedback("Before", 1))
		require.NoError(t, err)

		type listResult struct {
			items []domain.Feedback
			err   error
		}
		done := make(chan listResult, 1)
		go func() {
			items, err := repo.FindAll(ctx)
			done <- listResult{items: items, err: err}
		}()

		<-inner.loaded
		added, err := repo.Save(ctx, newTestFeedback("During", 2))
		require.NoError(t, err)
		close(inner.release)

		early := <-done
		require.NoError(t, early.err)
		assert.Len(t, early.items, 1)

		after, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, after, 2)
		ids := []string{after[0].ID, after[1].ID}
		assert.Contains(t, ids, added.ID)
	})
}

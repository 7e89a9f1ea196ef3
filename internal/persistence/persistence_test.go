package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/feedback-service/internal/config"
	"github.com/spec-kit/feedback-service/internal/repository"
)

func TestNewPostgres_WithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, pg.PoolHandle())
	assert.NoError(t, pg.Ping(context.Background()))
	assert.NoError(t, RunMigrations(context.Background(), pg.PoolHandle(), "migrations", zap.NewNop()))
	pg.Close()
}

func TestNewSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	db, err := NewSQLite(path, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Ping(context.Background()))
	assert.True(t, db.DB.Migrator().HasTable(&repository.FeedbackModel{}))
}

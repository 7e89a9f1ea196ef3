package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/spec-kit/feedback-service/internal/domain"
)

type memoryFeedbackRepository struct {
	// writes hold mu so an upsert and a delete of the same id never interleave.
	mu    sync.Mutex
	items *gocache.Cache
}

// NewMemoryFeedbackRepository returns a process-local store. Contents are lost on restart.
func NewMemoryFeedbackRepository() FeedbackRepository {
	return &memoryFeedbackRepository{items: gocache.New(gocache.NoExpiration, 0)}
}

func (r *memoryFeedbackRepository) Count(_ context.Context) (int64, error) {
	return int64(r.items.ItemCount()), nil
}

func (r *memoryFeedbackRepository) Save(_ context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	saved := *feedback
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Set(saved.ID, saved, gocache.NoExpiration)
	return &saved, nil
}

func (r *memoryFeedbackRepository) FindByID(_ context.Context, id string) (*domain.Feedback, error) {
	v, ok := r.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	fb := v.(domain.Feedback)
	return &fb, nil
}

func (r *memoryFeedbackRepository) FindAll(_ context.Context) ([]domain.Feedback, error) {
	items := r.items.Items()
	result := make([]domain.Feedback, 0, len(items))
	for _, item := range items {
		result = append(result, item.Object.(domain.Feedback))
	}
	return result, nil
}

func (r *memoryFeedbackRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.items.Get(id)
	return ok, nil
}

func (r *memoryFeedbackRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items.Get(id); !ok {
		return ErrNotFound
	}
	r.items.Delete(id)
	return nil
}

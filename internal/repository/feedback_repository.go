package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/feedback-service/internal/domain"
)

// ErrNotFound is returned when no feedback row matches the requested id.
var ErrNotFound error = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "feedback not found" }

// NotFound marks the error as a missing resource for the HTTP error mapping.
func (notFoundError) NotFound() bool { return true }

// FeedbackRepository encapsulates feedback persistence.
type FeedbackRepository interface {
	Count(ctx context.Context) (int64, error)
	// Save inserts when ID is empty (assigning a new one) and otherwise overwrites the row with that ID.
	Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	FindAll(ctx context.Context) ([]domain.Feedback, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository instantiates the Postgres-backed repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&count)
	return count, err
}

func (r *feedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	const query = `
        INSERT INTO feedback (id, title, description, category, status, priority, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, description=EXCLUDED.description,
            category=EXCLUDED.category, status=EXCLUDED.status, priority=EXCLUDED.priority,
            created_at=EXCLUDED.created_at`
	saved := *feedback
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if _, err := r.pool.Exec(ctx, query,
		saved.ID,
		saved.Title,
		saved.Description,
		saved.Category,
		saved.Status,
		saved.Priority,
		saved.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *feedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	const query = `
        SELECT id, title, description, category, status, priority, created_at
        FROM feedback WHERE id=$1`
	var fb domain.Feedback
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&fb.ID,
		&fb.Title,
		&fb.Description,
		&fb.Category,
		&fb.Status,
		&fb.Priority,
		&fb.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, title, description, category, status, priority, created_at
        FROM feedback`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

func (r *feedbackRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM feedback WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *feedbackRepository) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFeedback(rows pgx.Rows) ([]domain.Feedback, error) {
	result := []domain.Feedback{}
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.Title,
			&fb.Description,
			&fb.Category,
			&fb.Status,
			&fb.Priority,
			&fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}

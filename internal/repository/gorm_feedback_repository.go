package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/feedback-service/internal/domain"
)

// FeedbackModel is the gorm mapping of the feedback table.
type FeedbackModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:140;not null"`
	Description string `gorm:"size:2000;not null"`
	Category    string `gorm:"size:64;not null"`
	Status      string `gorm:"size:20;not null;default:OPEN"`
	Priority    string `gorm:"size:20;not null;default:MEDIUM"`
	CreatedAt   int64  `gorm:"not null;autoCreateTime:false;index"`
}

func (FeedbackModel) TableName() string {
	return "feedback"
}

var feedbackUpdateColumns = []string{"title", "description", "category", "status", "priority", "created_at"}

type gormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository builds a repository over any gorm dialect.
func NewGormFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &gormFeedbackRepository{db: db}
}

func (r *gormFeedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FeedbackModel{}).Count(&count).Error
	return count, err
}

func (r *gormFeedbackRepository) Save(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error) {
	model := toFeedbackModel(feedback)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(feedbackUpdateColumns),
		}).
		Create(&model).Error
	if err != nil {
		return nil, err
	}
	return toFeedbackDomain(model), nil
}

func (r *gormFeedbackRepository) FindByID(ctx context.Context, id string) (*domain.Feedback, error) {
	var model FeedbackModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toFeedbackDomain(model), nil
}

func (r *gormFeedbackRepository) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	var models []FeedbackModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Feedback, 0, len(models))
	for _, m := range models {
		result = append(result, *toFeedbackDomain(m))
	}
	return result, nil
}

func (r *gormFeedbackRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FeedbackModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *gormFeedbackRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FeedbackModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toFeedbackModel(fb *domain.Feedback) FeedbackModel {
	return FeedbackModel{
		ID:          fb.ID,
		Title:       fb.Title,
		Description: fb.Description,
		Category:    fb.Category,
		Status:      string(fb.Status),
		Priority:    string(fb.Priority),
		CreatedAt:   fb.CreatedAt,
	}
}

func toFeedbackDomain(m FeedbackModel) *domain.Feedback {
	priority := domain.FeedbackPriority(m.Priority)
	if priority == "" {
		priority = domain.DefaultPriority
	}
	return &domain.Feedback{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Status:      domain.FeedbackStatus(m.Status),
		Priority:    priority,
		CreatedAt:   m.CreatedAt,
	}
}

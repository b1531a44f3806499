package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// LessonRepository persists lessons.
type LessonRepository interface {
	List(ctx context.Context) ([]models.Lesson, error)
	ListByLevel(ctx context.Context, level string) ([]models.Lesson, error)
	GetByID(ctx context.Context, id uint) (models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Lesson, error)
	Delete(ctx context.Context, id uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository constructs a GORM-backed lesson repository.
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) List(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// ListByLevel matches the level exactly; no case folding is applied.
func (r *lessonRepository) ListByLevel(ctx context.Context, level string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where("level = ?", level).
		Order("created_at DESC").
		Order("id DESC").
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return models.Lesson{}, err
	}
	return lesson, nil
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Lesson, error) {
	result := r.db.WithContext(ctx).Model(&models.Lesson{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Lesson{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Lesson{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the lesson and detaches it from assignments and classes.
func (r *lessonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Assignment{}).Where("lesson_id = ?", id).Update("lesson_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Class{}).Where("lesson_id = ?", id).Update("lesson_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Lesson{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

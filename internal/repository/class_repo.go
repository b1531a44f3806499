package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

const (
	// SortScheduledAsc lists the earliest class first.
	SortScheduledAsc = "scheduled_date ASC"
	// SortScheduledDesc lists the latest class first.
	SortScheduledDesc = "scheduled_date DESC"
)

// ClassFilter narrows class listings.
type ClassFilter struct {
	StudentID *uint
	From      *time.Time
	Sort      string
	Limit     int
}

// ClassRepository persists scheduled classes.
type ClassRepository interface {
	List(ctx context.Context, filter ClassFilter) ([]models.Class, error)
	Count(ctx context.Context, filter ClassFilter) (int64, error)
	GetByID(ctx context.Context, id uint) (models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Class, error)
	Delete(ctx context.Context, id uint) error
}

type classRepository struct {
	db *gorm.DB
}

// NewClassRepository constructs a GORM-backed class repository.
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) filtered(ctx context.Context, filter ClassFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Class{})
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.From != nil {
		query = query.Where("scheduled_date >= ?", filter.From.UTC())
	}
	return query
}

// List returns classes with Student and Lesson preloaded for display.
func (r *classRepository) List(ctx context.Context, filter ClassFilter) ([]models.Class, error) {
	sort := filter.Sort
	if sort == "" {
		sort = SortScheduledAsc
	}

	query := r.filtered(ctx, filter).Preload("Student").Preload("Lesson").Order(sort).Order("id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var classes []models.Class
	if err := query.Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) Count(ctx context.Context, filter ClassFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *classRepository) GetByID(ctx context.Context, id uint) (models.Class, error) {
	var class models.Class
	if err := r.db.WithContext(ctx).Preload("Student").Preload("Lesson").First(&class, id).Error; err != nil {
		return models.Class{}, err
	}
	return class, nil
}

func (r *classRepository) Create(ctx context.Context, class *models.Class) error {
	return r.db.WithContext(ctx).Omit("Student", "Lesson").Create(class).Error
}

func (r *classRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Class, error) {
	result := r.db.WithContext(ctx).Model(&models.Class{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Class{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Class{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *classRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

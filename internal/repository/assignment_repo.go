package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

const (
	// SortCreatedDesc lists newest rows first.
	SortCreatedDesc = "created_at DESC"
	// SortDueDateAsc lists the nearest due date first.
	SortDueDateAsc = "due_date ASC"
	// SortDueDateDesc lists the furthest due date first.
	SortDueDateDesc = "due_date DESC"
)

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	StudentID *uint
	Sort      string
	Limit     int
}

// AssignmentRepository persists assignments.
type AssignmentRepository interface {
	List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Assignment, error)
	Delete(ctx context.Context, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// List returns assignments with Student and Lesson preloaded for display.
func (r *assignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{}).Preload("Student").Preload("Lesson")

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}

	sort := filter.Sort
	if sort == "" {
		sort = SortCreatedDesc
	}
	query = query.Order(sort).Order("id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).Preload("Student").Preload("Lesson").First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Omit("Student", "Lesson").Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Assignment, error) {
	result := r.db.WithContext(ctx).Model(&models.Assignment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Assignment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Assignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

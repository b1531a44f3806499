package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// StatsRepository exposes the independent counts behind the teacher dashboard.
type StatsRepository interface {
	CountStudents(ctx context.Context) (int64, error)
	CountActiveStudents(ctx context.Context) (int64, error)
	CountLessons(ctx context.Context) (int64, error)
	CountPendingAssignments(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository constructs a GORM-backed stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountStudents(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Student{}))
}

func (r *statsRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Student{}).Where("status = ?", models.StudentStatusActive))
}

func (r *statsRepository) CountLessons(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Lesson{}))
}

func (r *statsRepository) CountPendingAssignments(ctx context.Context) (int64, error) {
	return r.count(r.db.WithContext(ctx).Model(&models.Assignment{}).Where("status = ?", models.AssignmentStatusPending))
}

func (r *statsRepository) count(query *gorm.DB) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// StudentRepository persists students.
type StudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetActiveByEmail(ctx context.Context, email string) (models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a GORM-backed student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) GetActiveByEmail(ctx context.Context, email string) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Where("status = ?", models.StudentStatusActive).
		First(&student).Error
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Student
		if err := tx.Select("id").First(&existing, id).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return models.Student{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the student together with their assignments and classes.
func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Class{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Student{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

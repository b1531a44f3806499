package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// ResourceRepository persists teaching resources.
type ResourceRepository interface {
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id uint) (models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id uint) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository constructs a GORM-backed resource repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) List(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return models.Resource{}, err
	}
	return resource, nil
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

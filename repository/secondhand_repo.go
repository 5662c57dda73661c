package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

// SecondHandFilter narrows item listings; zero values mean no filter.
type SecondHandFilter struct {
	Category string
	Search   string
}

type SecondHandRepository interface {
	Create(item *models.SecondHandItem) error
	FindByID(id int) (*models.SecondHandItem, error)
	Update(item *models.SecondHandItem) error
	List(filter SecondHandFilter, offset, limit int) ([]models.SecondHandItem, int64, error)
	ListByOwner(ownerID, offset, limit int) ([]models.SecondHandItem, error)
	ListAll(offset, limit int) ([]models.SecondHandItem, error)
	CountActive() (int64, error)
}

type GormSecondHandRepo struct {
	db *gorm.DB
}

func NewGormSecondHandRepo(db *gorm.DB) *GormSecondHandRepo {
	return &GormSecondHandRepo{db: db}
}

func (r *GormSecondHandRepo) Create(item *models.SecondHandItem) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// FindByID returns only active items; deactivated items read as not found.
func (r *GormSecondHandRepo) FindByID(id int) (*models.SecondHandItem, error) {
	var item models.SecondHandItem
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

func (r *GormSecondHandRepo) Update(item *models.SecondHandItem) error {
	item.UpdatedAt = time.Now().UTC()
	result := r.db.Model(&models.SecondHandItem{}).Where("id = ?", item.ID).
		Select("title", "description", "price", "category", "condition", "is_active", "updated_at").
		Updates(item)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormSecondHandRepo) List(filter SecondHandFilter, offset, limit int) ([]models.SecondHandItem, int64, error) {
	query := r.db.Model(&models.SecondHandItem{}).Where("is_active = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	var items []models.SecondHandItem
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list items: %w", err)
	}
	return items, total, nil
}

func (r *GormSecondHandRepo) ListByOwner(ownerID, offset, limit int) ([]models.SecondHandItem, error) {
	var items []models.SecondHandItem
	err := r.db.Where("owner_id = ? AND is_active = ?", ownerID, true).
		Offset(offset).Limit(limit).Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *GormSecondHandRepo) ListAll(offset, limit int) ([]models.SecondHandItem, error) {
	var items []models.SecondHandItem
	if err := r.db.Offset(offset).Limit(limit).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *GormSecondHandRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.SecondHandItem{}).Where("is_active = ?", true).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusgo-backend/models"
)

// ErrandFilter narrows task listings; zero values mean no filter.
// Cancelled tasks are always excluded from public listings.
type ErrandFilter struct {
	Status string
	Search string
}

type ErrandRepository interface {
	CreateTask(task *models.ErrandTask) error
	FindTaskByID(id int) (*models.ErrandTask, error)
	UpdateTask(task *models.ErrandTask) error
	ListTasks(filter ErrandFilter, offset, limit int) ([]models.ErrandTask, int64, error)
	ListTasksByOwner(ownerID, offset, limit int) ([]models.ErrandTask, error)
	ListTasksByAssignee(assigneeID, offset, limit int) ([]models.ErrandTask, error)
	ListAllTasks(offset, limit int) ([]models.ErrandTask, error)
	CountOpenTasks() (int64, error)

	CreateResponse(resp *models.ErrandResponse) error
	FindResponse(taskID, responseID int) (*models.ErrandResponse, error)
	FindResponseByUser(taskID, userID int) (*models.ErrandResponse, error)
	ListResponses(taskID int) ([]models.ErrandResponse, error)
	MarkResponseAccepted(responseID int) error
}

type GormErrandRepo struct {
	db *gorm.DB
}

func NewGormErrandRepo(db *gorm.DB) *GormErrandRepo {
	return &GormErrandRepo{db: db}
}

func (r *GormErrandRepo) CreateTask(task *models.ErrandTask) error {
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.ErrandOpen
	}
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create errand task: %w", err)
	}
	return nil
}

func (r *GormErrandRepo) FindTaskByID(id int) (*models.ErrandTask, error) {
	var task models.ErrandTask
	err := r.db.Where("id = ? AND status != ?", id, models.ErrandCancelled).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find errand task: %w", err)
	}
	return &task, nil
}

func (r *GormErrandRepo) UpdateTask(task *models.ErrandTask) error {
	task.UpdatedAt = time.Now().UTC()
	result := r.db.Model(&models.ErrandTask{}).Where("id = ?", task.ID).
		Select("title", "description", "reward", "location", "deadline",
			"assignee_id", "status", "updated_at").
		Updates(task)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update errand task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormErrandRepo) ListTasks(filter ErrandFilter, offset, limit int) ([]models.ErrandTask, int64, error) {
	query := r.db.Model(&models.ErrandTask{}).Where("status != ?", models.ErrandCancelled)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count errand tasks: %w", err)
	}

	var tasks []models.ErrandTask
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list errand tasks: %w", err)
	}
	return tasks, total, nil
}

func (r *GormErrandRepo) ListTasksByOwner(ownerID, offset, limit int) ([]models.ErrandTask, error) {
	var tasks []models.ErrandTask
	err := r.db.Where("owner_id = ?", ownerID).
		Offset(offset).Limit(limit).Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list errand tasks: %w", err)
	}
	return tasks, nil
}

func (r *GormErrandRepo) ListTasksByAssignee(assigneeID, offset, limit int) ([]models.ErrandTask, error) {
	var tasks []models.ErrandTask
	err := r.db.Where("assignee_id = ?", assigneeID).
		Offset(offset).Limit(limit).Order("created_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list errand tasks: %w", err)
	}
	return tasks, nil
}

func (r *GormErrandRepo) ListAllTasks(offset, limit int) ([]models.ErrandTask, error) {
	var tasks []models.ErrandTask
	if err := r.db.Offset(offset).Limit(limit).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list errand tasks: %w", err)
	}
	return tasks, nil
}

func (r *GormErrandRepo) CountOpenTasks() (int64, error) {
	var count int64
	err := r.db.Model(&models.ErrandTask{}).Where("status = ?", models.ErrandOpen).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count errand tasks: %w", err)
	}
	return count, nil
}

func (r *GormErrandRepo) CreateResponse(resp *models.ErrandResponse) error {
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}
	if err := r.db.Create(resp).Error; err != nil {
		return fmt.Errorf("failed to create errand response: %w", err)
	}
	return nil
}

func (r *GormErrandRepo) FindResponse(taskID, responseID int) (*models.ErrandResponse, error) {
	var resp models.ErrandResponse
	err := r.db.Where("id = ? AND task_id = ?", responseID, taskID).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find errand response: %w", err)
	}
	return &resp, nil
}

func (r *GormErrandRepo) FindResponseByUser(taskID, userID int) (*models.ErrandResponse, error) {
	var resp models.ErrandResponse
	err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find errand response: %w", err)
	}
	return &resp, nil
}

func (r *GormErrandRepo) ListResponses(taskID int) ([]models.ErrandResponse, error) {
	var resps []models.ErrandResponse
	err := r.db.Where("task_id = ?", taskID).Order("created_at").Find(&resps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list errand responses: %w", err)
	}
	return resps, nil
}

func (r *GormErrandRepo) MarkResponseAccepted(responseID int) error {
	result := r.db.Model(&models.ErrandResponse{}).Where("id = ?", responseID).Update("is_accepted", true)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to accept errand response: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

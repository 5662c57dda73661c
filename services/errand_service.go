package services

import (
	"errors"
	"time"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

var (
	ErrTaskNotFound     = errors.New("errand task not found")
	ErrTaskNotOpen      = errors.New("errand task is not open")
	ErrAlreadyResponded = errors.New("already responded to this task")
	ErrResponseMissing  = errors.New("errand response not found")
	ErrNotAssignee      = errors.New("not the assignee of this task")
)

// ErrandPage is a paginated task listing.
type ErrandPage struct {
	Tasks      []models.ErrandTask `json:"tasks"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Limit      int                 `json:"limit"`
}

type ErrandService struct {
	errands repository.ErrandRepository
	users   repository.UserRepository
}

func NewErrandService(er repository.ErrandRepository, ur repository.UserRepository) *ErrandService {
	return &ErrandService{errands: er, users: ur}
}

func (s *ErrandService) CreateTask(ownerID int, title, description string, reward float64, location string, deadline time.Time) (*models.ErrandTask, error) {
	if title == "" || description == "" || location == "" {
		return nil, errors.New("title, description and location are required")
	}
	if reward < 0 {
		return nil, errors.New("reward cannot be negative")
	}
	if !deadline.After(time.Now()) {
		return nil, errors.New("deadline must be in the future")
	}

	task := &models.ErrandTask{
		Title:       title,
		Description: description,
		Reward:      reward,
		Location:    location,
		Deadline:    deadline,
		OwnerID:     ownerID,
		Status:      models.ErrandOpen,
	}
	if err := s.errands.CreateTask(task); err != nil {
		return nil, err
	}
	s.resolveNames(task)
	return task, nil
}

func (s *ErrandService) GetTask(id int) (*models.ErrandTask, error) {
	task, err := s.errands.FindTaskByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.resolveNames(task)
	return task, nil
}

func (s *ErrandService) ListTasks(filter repository.ErrandFilter, skip, limit int) (*ErrandPage, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	tasks, total, err := s.errands.ListTasks(filter, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.resolveNames(&tasks[i])
	}

	return &ErrandPage{
		Tasks:      tasks,
		Total:      total,
		Page:       skip/limit + 1,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Limit:      limit,
	}, nil
}

// UpdateTask replaces the mutable task fields. Only the owner may update, and
// only while the task is still open.
func (s *ErrandService) UpdateTask(id, ownerID int, title, description string, reward float64, location string, deadline time.Time) (*models.ErrandTask, error) {
	task, err := s.ownTask(id, ownerID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.ErrandOpen {
		return nil, ErrTaskNotOpen
	}

	task.Title = title
	task.Description = description
	task.Reward = reward
	task.Location = location
	task.Deadline = deadline
	if err := s.errands.UpdateTask(task); err != nil {
		return nil, err
	}
	s.resolveNames(task)
	return task, nil
}

// CancelTask soft-deletes an open task by moving it to cancelled.
func (s *ErrandService) CancelTask(id, ownerID int) error {
	task, err := s.ownTask(id, ownerID)
	if err != nil {
		return err
	}
	if task.Status != models.ErrandOpen {
		return ErrTaskNotOpen
	}
	task.Status = models.ErrandCancelled
	return s.errands.UpdateTask(task)
}

func (s *ErrandService) Respond(taskID, userID int, message string) (*models.ErrandResponse, error) {
	task, err := s.errands.FindTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Status != models.ErrandOpen {
		return nil, ErrTaskNotOpen
	}
	if task.OwnerID == userID {
		return nil, errors.New("cannot respond to your own task")
	}
	if _, err := s.errands.FindResponseByUser(taskID, userID); err == nil {
		return nil, ErrAlreadyResponded
	}

	resp := &models.ErrandResponse{
		TaskID:  taskID,
		UserID:  userID,
		Message: message,
	}
	if err := s.errands.CreateResponse(resp); err != nil {
		return nil, err
	}
	if u, err := s.users.FindByID(userID); err == nil {
		resp.UserName = u.Username
	}
	return resp, nil
}

// ListResponses returns a task's responses; only the owner may read them.
func (s *ErrandService) ListResponses(taskID, ownerID int) ([]models.ErrandResponse, error) {
	if _, err := s.ownTask(taskID, ownerID); err != nil {
		return nil, err
	}
	resps, err := s.errands.ListResponses(taskID)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string)
	for i := range resps {
		name, ok := names[resps[i].UserID]
		if !ok {
			if u, err := s.users.FindByID(resps[i].UserID); err == nil {
				name = u.Username
			}
			names[resps[i].UserID] = name
		}
		resps[i].UserName = name
	}
	return resps, nil
}

// Accept assigns the task to the responder and moves it to in_progress.
func (s *ErrandService) Accept(taskID, responseID, ownerID int) error {
	task, err := s.ownTask(taskID, ownerID)
	if err != nil {
		return err
	}
	if task.Status != models.ErrandOpen {
		return ErrTaskNotOpen
	}

	resp, err := s.errands.FindResponse(taskID, responseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResponseMissing
		}
		return err
	}

	if err := s.errands.MarkResponseAccepted(resp.ID); err != nil {
		return err
	}
	assignee := resp.UserID
	task.AssigneeID = &assignee
	task.Status = models.ErrandInProgress
	return s.errands.UpdateTask(task)
}

// Complete is performed by the assignee once the errand is done.
func (s *ErrandService) Complete(taskID, userID int) error {
	task, err := s.errands.FindTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if task.AssigneeID == nil || *task.AssigneeID != userID {
		return ErrNotAssignee
	}
	if task.Status != models.ErrandInProgress {
		return ErrTaskNotOpen
	}
	task.Status = models.ErrandCompleted
	return s.errands.UpdateTask(task)
}

func (s *ErrandService) TasksByOwner(ownerID, skip, limit int) ([]models.ErrandTask, error) {
	if limit <= 0 {
		limit = 100
	}
	tasks, err := s.errands.ListTasksByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.resolveNames(&tasks[i])
	}
	return tasks, nil
}

func (s *ErrandService) TasksByAssignee(assigneeID, skip, limit int) ([]models.ErrandTask, error) {
	if limit <= 0 {
		limit = 100
	}
	tasks, err := s.errands.ListTasksByAssignee(assigneeID, skip, limit)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.resolveNames(&tasks[i])
	}
	return tasks, nil
}

func (s *ErrandService) ownTask(taskID, ownerID int) (*models.ErrandTask, error) {
	task, err := s.errands.FindTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *ErrandService) resolveNames(task *models.ErrandTask) {
	if u, err := s.users.FindByID(task.OwnerID); err == nil {
		task.OwnerName = u.Username
	}
	if task.AssigneeID != nil {
		if u, err := s.users.FindByID(*task.AssigneeID); err == nil {
			task.AssigneeName = u.Username
		}
	}
}

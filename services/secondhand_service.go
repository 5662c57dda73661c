package services

import (
	"errors"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNotOwner     = errors.New("not the owner")
)

// SecondHandPage is a paginated item listing.
type SecondHandPage struct {
	Items      []models.SecondHandItem `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"total_pages"`
	Limit      int                     `json:"limit"`
}

type SecondHandService struct {
	items repository.SecondHandRepository
	users repository.UserRepository
}

func NewSecondHandService(ir repository.SecondHandRepository, ur repository.UserRepository) *SecondHandService {
	return &SecondHandService{items: ir, users: ur}
}

func (s *SecondHandService) Create(ownerID int, title, description string, price float64, category, condition string) (*models.SecondHandItem, error) {
	if title == "" || description == "" {
		return nil, errors.New("title and description are required")
	}
	if price < 0 {
		return nil, errors.New("price cannot be negative")
	}
	if category == "" || condition == "" {
		return nil, errors.New("category and condition are required")
	}

	item := &models.SecondHandItem{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Condition:   condition,
		OwnerID:     ownerID,
		IsActive:    true,
	}
	if err := s.items.Create(item); err != nil {
		return nil, err
	}
	item.OwnerName = s.ownerName(ownerID)
	return item, nil
}

func (s *SecondHandService) Get(id int) (*models.SecondHandItem, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	item.OwnerName = s.ownerName(item.OwnerID)
	return item, nil
}

func (s *SecondHandService) List(filter repository.SecondHandFilter, skip, limit int) (*SecondHandPage, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	items, total, err := s.items.List(filter, skip, limit)
	if err != nil {
		return nil, err
	}
	s.resolveOwnerNames(items)

	return &SecondHandPage{
		Items:      items,
		Total:      total,
		Page:       skip/limit + 1,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Limit:      limit,
	}, nil
}

func (s *SecondHandService) ListByUser(userID, skip, limit int) ([]models.SecondHandItem, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	items, err := s.items.ListByOwner(userID, skip, limit)
	if err != nil {
		return nil, err
	}
	s.resolveOwnerNames(items)
	return items, nil
}

func (s *SecondHandService) Update(id, userID int, title, description string, price float64, category, condition string) (*models.SecondHandItem, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID != userID {
		return nil, ErrNotOwner
	}

	item.Title = title
	item.Description = description
	item.Price = price
	item.Category = category
	item.Condition = condition
	if err := s.items.Update(item); err != nil {
		return nil, err
	}
	item.OwnerName = s.ownerName(item.OwnerID)
	return item, nil
}

// Deactivate is the soft delete: the row stays, the listing disappears.
func (s *SecondHandService) Deactivate(id, userID int) error {
	item, err := s.items.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if item.OwnerID != userID {
		return ErrNotOwner
	}
	item.IsActive = false
	return s.items.Update(item)
}

func (s *SecondHandService) ownerName(userID int) string {
	if u, err := s.users.FindByID(userID); err == nil {
		return u.Username
	}
	return ""
}

func (s *SecondHandService) resolveOwnerNames(items []models.SecondHandItem) {
	names := make(map[int]string)
	for i := range items {
		name, ok := names[items[i].OwnerID]
		if !ok {
			name = s.ownerName(items[i].OwnerID)
			names[items[i].OwnerID] = name
		}
		items[i].OwnerName = name
	}
}

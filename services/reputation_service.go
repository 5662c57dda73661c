package services

import (
	"errors"

	"campusgo-backend/models"
	"campusgo-backend/repository"
)

var ErrUserNotFound = errors.New("user not found")

type ReputationService struct {
	records repository.ReputationRepository
	users   repository.UserRepository
}

func NewReputationService(rr repository.ReputationRepository, ur repository.UserRepository) *ReputationService {
	return &ReputationService{records: rr, users: ur}
}

// Apply records a score change and updates the user's score, clamped to [0,100].
func (s *ReputationService) Apply(userID, change int, reason string) (*models.ReputationRecord, error) {
	if reason == "" {
		return nil, errors.New("reason is required")
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	record := &models.ReputationRecord{
		UserID:      userID,
		ScoreChange: change,
		Reason:      reason,
	}
	if err := s.records.Create(record); err != nil {
		return nil, err
	}

	score := user.ReputationScore + change
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if err := s.users.SetReputationScore(userID, score); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ReputationService) Records(userID int) ([]models.ReputationRecord, error) {
	return s.records.ListByUser(userID)
}

func (s *ReputationService) Score(userID int) (int, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.ReputationScore, nil
}

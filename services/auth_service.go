package services

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"campusgo-backend/config"
	"campusgo-backend/models"
	"campusgo-backend/repository"
	"campusgo-backend/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenPair is returned on login: a short-lived access token and a long-lived
// refresh token carrying a distinct type claim.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type AuthService struct {
	users  repository.UserRepository
	config *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: userRepo, config: cfg}
}

func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if len(username) < 3 || len(username) > 50 {
		return nil, errors.New("username must be between 3 and 50 characters")
	}
	if !strings.Contains(email, "@") || len(email) > 100 {
		return nil, errors.New("invalid email address")
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, errors.New("username already exists")
	}
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:        username,
		Email:           email,
		HashedPassword:  string(hashed),
		ReputationScore: 100,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return errors.New("password must be between 8 and 100 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain both letters and digits")
	}
	return nil
}

func (s *AuthService) Login(username, password string) (*TokenPair, *models.User, error) {
	if username == "" || password == "" {
		return nil, nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	access, err := s.createToken(u.ID, u.Username, utils.TokenTypeAccess)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.createToken(u.ID, u.Username, utils.TokenTypeRefresh)
	if err != nil {
		return nil, nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, u, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := utils.ParseJWT(s.config.JWTSecret, refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	u, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	return s.createToken(u.ID, u.Username, utils.TokenTypeAccess)
}

func (s *AuthService) createToken(userID int, username, tokenType string) (string, error) {
	ttl := time.Duration(s.config.JWTExpiryMinutes) * time.Minute
	if tokenType == utils.TokenTypeRefresh {
		ttl = time.Duration(s.config.RefreshExpiryHours) * time.Hour
	}
	return utils.GenerateJWT(s.config.JWTSecret, userID, username, tokenType, ttl)
}

// ParseToken validates an access token and returns the embedded identity.
func (s *AuthService) ParseToken(token string) (utils.Claims, error) {
	return utils.ParseJWT(s.config.JWTSecret, token, utils.TokenTypeAccess)
}

func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.users.FindByID(id)
}

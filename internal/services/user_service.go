package services

import (
	"time"

	"ispark/internal/models"
	"ispark/internal/repositories"
)

type UserService interface {
	GetUserByID(id int64) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UpdateRefresh(userID int64, token string, expiresAt time.Time) error
	GetByRefreshToken(token string) (*models.User, error)
	ClearRefresh(userID int64) error
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUserByID(id int64) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *userService) GetUserByPhone(phone string) (*models.User, error) {
	return s.repo.GetByPhone(phone)
}

func (s *userService) UpdateRefresh(userID int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(userID, token, expiresAt)
}

func (s *userService) GetByRefreshToken(token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(token)
}

func (s *userService) ClearRefresh(userID int64) error {
	return s.repo.ClearRefresh(userID)
}

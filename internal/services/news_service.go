package services

import (
	"fmt"
	"strings"

	"ispark/internal/models"
	"ispark/internal/repositories"
)

type NewsService interface {
	CreateNews(news *models.News) error
	GetNewsByID(id int64) (*models.News, error)
	ListNews(limit int) ([]*models.News, error)
	UpdateNews(news *models.News) error
	DeleteNews(id int64) error
}

type newsService struct {
	repo repositories.NewsRepository
}

func NewNewsService(repo repositories.NewsRepository) NewsService {
	return &newsService{repo: repo}
}

func (s *newsService) CreateNews(news *models.News) error {
	if strings.TrimSpace(news.Title) == "" || strings.TrimSpace(news.Text) == "" {
		return fmt.Errorf("title and text are required")
	}
	return s.repo.Create(news)
}

func (s *newsService) GetNewsByID(id int64) (*models.News, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

func (s *newsService) ListNews(limit int) ([]*models.News, error) {
	return s.repo.List(limit)
}

func (s *newsService) UpdateNews(news *models.News) error {
	existing, err := s.repo.GetByID(news.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if news.Title == "" {
		news.Title = existing.Title
	}
	if news.Text == "" {
		news.Text = existing.Text
	}
	if news.ImagePath == "" {
		news.ImagePath = existing.ImagePath
	}
	return s.repo.Update(news)
}

func (s *newsService) DeleteNews(id int64) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

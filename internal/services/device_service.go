package services

import (
	"fmt"
	"strings"

	"ispark/internal/models"
	"ispark/internal/repositories"
)

type DeviceService interface {
	RegisterDevice(userID int64, registrationID, deviceType string) (*models.Device, error)
}

type deviceService struct {
	repo repositories.DeviceRepository
}

func NewDeviceService(repo repositories.DeviceRepository) DeviceService {
	return &deviceService{repo: repo}
}

func (s *deviceService) RegisterDevice(userID int64, registrationID, deviceType string) (*models.Device, error) {
	registrationID = strings.TrimSpace(registrationID)
	deviceType = strings.TrimSpace(deviceType)
	if registrationID == "" || deviceType == "" {
		return nil, fmt.Errorf("registration_id and type are required")
	}

	device := &models.Device{
		UserID:         userID,
		RegistrationID: registrationID,
		Type:           deviceType,
	}
	if err := s.repo.Upsert(device); err != nil {
		return nil, err
	}
	return device, nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ispark/internal/services"
)

type DeviceHandler struct {
	Service services.DeviceService
}

func NewDeviceHandler(service services.DeviceService) *DeviceHandler {
	return &DeviceHandler{Service: service}
}

// @Summary      Регистрация push-токена устройства
// @Description  Повторная регистрация той же пары (пользователь, токен) обновляет тип устройства
// @Tags         Devices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /devices [post]
func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req struct {
		RegistrationID string `json:"registration_id" binding:"required"`
		Type           string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := currentUser(c)
	device, err := h.Service.RegisterDevice(userID, req.RegistrationID, req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Устройство зарегистрировано", "device": device})
}

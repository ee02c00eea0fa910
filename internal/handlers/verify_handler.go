package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ispark/internal/services"
)

type VerifyHandler struct {
	Service *services.VerificationService
}

func NewVerifyHandler(service *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{Service: service}
}

// @Summary      Отправка проверочного кода для регистрации
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /send-code [post]
func (h *VerifyHandler) SendCode(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Номер телефона обязателен"})
		return
	}

	if err := h.Service.RequestRegisterCode(req.PhoneNumber); err != nil {
		switch {
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Пользователь уже существует"})
		case errors.Is(err, services.ErrDispatch):
			log.Printf("[verify][send-code] dispatch failed: phone=%s err=%v", req.PhoneNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при отправке кода"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Код отправлен успешно"})
}

// @Summary      Проверка кода и регистрация
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /verify-code [post]
func (h *VerifyHandler) VerifyAndRegister(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		Code        string `json:"code" binding:"required"`
		FullName    string `json:"full_name" binding:"required"`
		Password    string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Номер телефона, ФИО, код и пароль обязательны"})
		return
	}

	user, err := h.Service.VerifyAndRegister(req.PhoneNumber, req.Code, req.FullName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный код"})
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Пользователь уже существует"})
		default:
			log.Printf("[verify][register] failed: phone=%s err=%v", req.PhoneNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании пользователя"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Пользователь успешно зарегистрирован",
		"user":    user,
	})
}

// @Summary      Отправка кода для сброса пароля
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /password-reset/send-code [post]
func (h *VerifyHandler) SendResetCode(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Номер телефона обязателен"})
		return
	}

	if err := h.Service.RequestResetCode(req.PhoneNumber); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
		case errors.Is(err, services.ErrDispatch):
			log.Printf("[verify][reset-code] dispatch failed: phone=%s err=%v", req.PhoneNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при отправке кода"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Код отправлен успешно"})
}

// @Summary      Подтверждение сброса пароля
// @Tags         Verification
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /password-reset/confirm [post]
func (h *VerifyHandler) ConfirmReset(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Номер телефона, код и новый пароль обязательны"})
		return
	}

	if err := h.Service.ConfirmReset(req.PhoneNumber, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
		case errors.Is(err, services.ErrBadCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный код"})
		default:
			log.Printf("[verify][reset-confirm] failed: phone=%s err=%v", req.PhoneNumber, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сбросе пароля"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пароль обновлён"})
}

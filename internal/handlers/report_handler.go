package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ispark/internal/models"
	"ispark/internal/pdf"
	"ispark/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
	Users   services.UserService
	PDF     pdf.Generator
	// корень хранения загруженных видео
	FilesRoot string
}

func NewReportHandler(service *services.ReportService, users services.UserService, generator pdf.Generator, filesRoot string) *ReportHandler {
	return &ReportHandler{Service: service, Users: users, PDF: generator, FilesRoot: filesRoot}
}

// @Summary      Загрузка заявки
// @Tags         Reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  models.Report
// @Failure      400  {object}  map[string]string
// @Router       /reports [post]
func (h *ReportHandler) Upload(c *gin.Context) {
	userID, _ := currentUser(c)

	city := strings.TrimSpace(c.PostForm("city"))
	street := strings.TrimSpace(c.PostForm("street"))
	description := strings.TrimSpace(c.PostForm("description"))
	wasAtDate := strings.TrimSpace(c.PostForm("was_at_date"))
	wasAtTime := strings.TrimSpace(c.PostForm("was_at_time"))
	if city == "" || street == "" || description == "" || wasAtDate == "" || wasAtTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city, street, description, was_at_date и was_at_time обязательны"})
		return
	}

	report := &models.Report{
		UserID:      userID,
		City:        city,
		Street:      street,
		Description: description,
		WasAtDate:   wasAtDate,
		WasAtTime:   wasAtTime,
	}

	// видео опционально
	if file, err := c.FormFile("video"); err == nil && file != nil {
		dir := filepath.Join(h.FilesRoot, "videos")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении файла"})
			return
		}
		name := uuid.NewString() + filepath.Ext(file.Filename)
		dst := filepath.Join(dir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Printf("[report][upload] save video failed: err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении файла"})
			return
		}
		report.VideoPath = dst
	}

	if err := h.Service.Create(report); err != nil {
		log.Printf("[report][upload] create failed: user_id=%d err=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании заявки"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// @Summary      Карточка заявки
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID заявки"
// @Success      200  {object}  models.Report
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reports/{id} [get]
func (h *ReportHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	report, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userID, isStaff := currentUser(c)
	if report.UserID != userID && !isStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Список заявок
// @Description  type=user — свои заявки, type=all — все (только для персонала)
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Report
// @Failure      404  {object}  map[string]string
// @Router       /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	listType := c.DefaultQuery("type", "user")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}

	userID, isStaff := currentUser(c)

	var (
		reports []*models.Report
		err     error
	)
	switch listType {
	case "user":
		reports, err = h.Service.ListByUser(userID, limit)
	case "all":
		if !isStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		reports, err = h.Service.ListAll(limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type должен быть user или all"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(reports) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Заявки не найдены"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// @Summary      Смена статуса заявки (бэк-офис)
// @Tags         Reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID заявки"
// @Success      200  {object}  models.Report
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reports/{id}/status [post]
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var req struct {
		Status    string  `json:"status" binding:"required"`
		ErrorCode *string `json:"error_code"`
		ErrorText *string `json:"error_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.Service.UpdateStatus(id, req.Status, req.ErrorCode, req.ErrorText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
		case errors.Is(err, services.ErrBadTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый переход статуса"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Выгрузка карточки заявки в PDF (бэк-офис)
// @Tags         Reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  int  true  "ID заявки"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /reports/{id}/pdf [get]
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	report, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Заявка не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	owner, err := h.Users.GetUserByID(report.UserID)
	if err != nil || owner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении заявителя"})
		return
	}

	data := pdf.ReportSummaryData{
		ReportID:    report.ID,
		FullName:    owner.FullName,
		PhoneNumber: owner.PhoneNumber,
		City:        report.City,
		Street:      report.Street,
		Description: report.Description,
		WasAtDate:   report.WasAtDate,
		WasAtTime:   report.WasAtTime,
		Status:      report.Status,
		UploadedAt:  report.UploadedAt,
	}
	if report.ErrorCode != nil {
		data.ErrorCode = *report.ErrorCode
	}
	if report.ErrorText != nil {
		data.ErrorText = *report.ErrorText
	}

	path, err := h.PDF.GenerateReportSummary(data)
	if err != nil {
		log.Printf("[report][pdf] generate failed: report_id=%d err=%v", report.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при генерации PDF"})
		return
	}
	c.FileAttachment(path, fmt.Sprintf("report_%d.pdf", report.ID))
}

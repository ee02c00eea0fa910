package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ispark/internal/models"
	"ispark/internal/services"
)

type NewsHandler struct {
	Service   services.NewsService
	FilesRoot string
}

func NewNewsHandler(service services.NewsService, filesRoot string) *NewsHandler {
	return &NewsHandler{Service: service, FilesRoot: filesRoot}
}

func (h *NewsHandler) saveImage(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", nil // картинка опциональна
	}
	dir := filepath.Join(h.FilesRoot, "news")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// @Summary      Публикация новости (бэк-офис)
// @Tags         News
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  models.News
// @Failure      400  {object}  map[string]string
// @Router       /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	text := strings.TrimSpace(c.PostForm("text"))

	imagePath, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении изображения"})
		return
	}

	news := &models.News{Title: title, Text: text, ImagePath: imagePath}
	if err := h.Service.CreateNews(news); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, news)
}

// @Summary      Список новостей
// @Tags         News
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.News
// @Router       /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}

	items, err := h.Service.ListNews(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Новость по ID
// @Tags         News
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID новости"
// @Success      200  {object}  models.News
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	news, err := h.Service.GetNewsByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Новость не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, news)
}

// @Summary      Обновление новости (бэк-офис)
// @Tags         News
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID новости"
// @Success      200  {object}  models.News
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [put]
func (h *NewsHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении изображения"})
		return
	}

	news := &models.News{
		ID:        id,
		Title:     strings.TrimSpace(c.PostForm("title")),
		Text:      strings.TrimSpace(c.PostForm("text")),
		ImagePath: imagePath,
	}
	if err := h.Service.UpdateNews(news); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Новость не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, news)
}

// @Summary      Удаление новости (бэк-офис)
// @Tags         News
// @Security     BearerAuth
// @Param        id  path  int  true  "ID новости"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	if err := h.Service.DeleteNews(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Новость не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

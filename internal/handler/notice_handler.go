package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bccodingclub/notice-board-api/internal/models"
	"github.com/bccodingclub/notice-board-api/internal/service"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
	"github.com/bccodingclub/notice-board-api/pkg/response"
)

type noticeService interface {
	List(ctx context.Context, role models.Role, query models.NoticeQuery) []models.Notice
	Get(ctx context.Context, role models.Role, id string) (*models.Notice, error)
	Create(ctx context.Context, req service.NoticeDraftRequest) (*models.Notice, error)
	Update(ctx context.Context, id string, req service.NoticeDraftRequest) (*models.Notice, error)
	Delete(ctx context.Context, id string) error
	SetVisible(ctx context.Context, id string, req service.SetVisibilityRequest) (*models.Notice, error)
	React(ctx context.Context, id string) (*models.Notice, error)
}

type exportService interface {
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// NoticeHandler exposes the notice board endpoints.
type NoticeHandler struct {
	service  noticeService
	exporter exportService
}

// NewNoticeHandler builds a new handler.
func NewNoticeHandler(service noticeService, exporter exportService) *NoticeHandler {
	return &NoticeHandler{service: service, exporter: exporter}
}

// List godoc
// @Summary List notices for the current role
// @Tags Notices
// @Produce json
// @Param search query string false "Case-insensitive title/description filter"
// @Param category query string false "Category filter, 'all' matches everything"
// @Success 200 {object} response.Envelope
// @Router /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	role := roleFromContext(c)
	query := models.NoticeQuery{
		Search:   c.Query("search"),
		Category: c.DefaultQuery("category", models.CategoryFilterAll),
	}
	notices := h.service.List(c.Request.Context(), role, query)
	response.JSON(c, http.StatusOK, notices, map[string]interface{}{"role": role, "count": len(notices)})
}

// Get godoc
// @Summary Get a single notice
// @Tags Notices
// @Produce json
// @Param id path string true "Notice id"
// @Success 200 {object} response.Envelope
// @Router /notices/{id} [get]
func (h *NoticeHandler) Get(c *gin.Context) {
	notice, err := h.service.Get(c.Request.Context(), roleFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Create godoc
// @Summary Publish a new notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param payload body service.NoticeDraftRequest true "Notice draft"
// @Success 201 {object} response.Envelope
// @Router /notices [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	var req service.NoticeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notice payload"))
		return
	}
	notice, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// Update godoc
// @Summary Edit an existing notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param id path string true "Notice id"
// @Param payload body service.NoticeDraftRequest true "Notice draft"
// @Success 200 {object} response.Envelope
// @Router /notices/{id} [put]
func (h *NoticeHandler) Update(c *gin.Context) {
	var req service.NoticeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid notice payload"))
		return
	}
	notice, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Delete godoc
// @Summary Delete a notice
// @Tags Notices
// @Param id path string true "Notice id"
// @Success 204
// @Router /notices/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetVisibility godoc
// @Summary Show or hide a notice for visitors
// @Tags Notices
// @Accept json
// @Produce json
// @Param id path string true "Notice id"
// @Param payload body service.SetVisibilityRequest true "Visibility flag"
// @Success 200 {object} response.Envelope
// @Router /notices/{id}/visibility [patch]
func (h *NoticeHandler) SetVisibility(c *gin.Context) {
	var req service.SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid visibility payload"))
		return
	}
	notice, err := h.service.SetVisible(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// React godoc
// @Summary Add a reaction to a notice
// @Tags Notices
// @Produce json
// @Param id path string true "Notice id"
// @Success 200 {object} response.Envelope
// @Router /notices/{id}/reactions [post]
func (h *NoticeHandler) React(c *gin.Context) {
	notice, err := h.service.React(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Export godoc
// @Summary Download the board as CSV or PDF
// @Tags Notices
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /notices/export [get]
func (h *NoticeHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	result, err := h.exporter.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Body)
}

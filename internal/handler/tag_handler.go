package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService service.TagService
	logger     *zap.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{tagService: tagService, logger: logger}
}

// CreateTag godoc
// @Summary      Create tag
// @Description  Creates a project-scoped tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTagRequest true "Tag creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TagResponse}
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /tags [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, tag)
}

// ListTags godoc
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        projectId path string true "Project ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TagResponse}
// @Failure      404 {object} response.ErrorResponse "Project not found"
// @Router       /projects/{projectId}/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), projectID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tags)
}

// UpdateTag godoc
// @Summary      Update tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        tagId path string true "Tag ID (UUID)"
// @Param        request body dto.UpdateTagRequest true "Tag update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TagResponse}
// @Failure      404 {object} response.ErrorResponse "Tag not found"
// @Router       /tags/{tagId} [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), tagID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary      Delete tag
// @Description  Deletes the tag and removes it from every card
// @Tags         tags
// @Produce      json
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse "Tag not found"
// @Router       /tags/{tagId} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), tagID, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Tag deleted successfully"})
}

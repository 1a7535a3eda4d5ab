package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// ColumnHandler handles column HTTP requests
type ColumnHandler struct {
	columnService service.ColumnService
	logger        *zap.Logger
}

// NewColumnHandler creates a new ColumnHandler
func NewColumnHandler(columnService service.ColumnService, logger *zap.Logger) *ColumnHandler {
	return &ColumnHandler{columnService: columnService, logger: logger}
}

// CreateColumn godoc
// @Summary      Create column
// @Description  Appends a column to the end of a board
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateColumnRequest true "Column creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Router       /columns [post]
func (h *ColumnHandler) CreateColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.CreateColumn(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, column)
}

// GetColumn godoc
// @Summary      Get column
// @Tags         columns
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /columns/{columnId} [get]
func (h *ColumnHandler) GetColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.GetColumn(c.Request.Context(), columnID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

// ListColumns godoc
// @Summary      List columns
// @Description  Lists a board's live columns in display order
// @Tags         columns
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Router       /boards/{boardId}/columns [get]
func (h *ColumnHandler) ListColumns(c *gin.Context) {
	boardID, ok := parseIDParam(c, "boardId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	columns, err := h.columnService.ListColumns(c.Request.Context(), boardID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, columns)
}

// UpdateColumn godoc
// @Summary      Update column
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.UpdateColumnRequest true "Column update request"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /columns/{columnId} [put]
func (h *ColumnHandler) UpdateColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.UpdateColumn(c.Request.Context(), columnID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

// ReorderColumn godoc
// @Summary      Reorder column
// @Description  Moves a column before or after its named siblings
// @Tags         columns
// @Accept       json
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Param        request body dto.ReorderRequest true "Anchor siblings"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid anchors"
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Failure      409 {object} response.ErrorResponse "Concurrent reorder conflict"
// @Router       /columns/{columnId}/reorder [post]
func (h *ColumnHandler) ReorderColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.ReorderColumn(c.Request.Context(), columnID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

// ArchiveColumn godoc
// @Summary      Archive column
// @Description  Soft-deletes the column and its live cards
// @Tags         columns
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /columns/{columnId} [delete]
func (h *ColumnHandler) ArchiveColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.columnService.ArchiveColumn(c.Request.Context(), columnID, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Column archived successfully"})
}

// RestoreColumn godoc
// @Summary      Restore column
// @Tags         columns
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.ColumnResponse}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /columns/{columnId}/restore [post]
func (h *ColumnHandler) RestoreColumn(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	column, err := h.columnService.RestoreColumn(c.Request.Context(), columnID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, column)
}

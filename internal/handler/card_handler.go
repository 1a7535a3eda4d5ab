package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// CardHandler handles card HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *zap.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *zap.Logger) *CardHandler {
	return &CardHandler{cardService: cardService, logger: logger}
}

// CreateCard godoc
// @Summary      Create card
// @Description  Appends a card to the end of a column
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCardRequest true "Card creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /cards [post]
func (h *CardHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, card)
}

// GetCard godoc
// @Summary      Get card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Router       /cards/{cardId} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(c.Request.Context(), cardID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// ListCards godoc
// @Summary      List cards
// @Description  Lists a column's live cards in display order
// @Tags         cards
// @Produce      json
// @Param        columnId path string true "Column ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Column not found"
// @Router       /columns/{columnId}/cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	columnID, ok := parseIDParam(c, "columnId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), columnID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, cards)
}

// UpdateCard godoc
// @Summary      Update card content
// @Description  Updates title, description, duration and assignee. The request
// @Description  must carry the version the client last read; a stale version is
// @Description  rejected with 409 and no fields change.
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.UpdateCardRequest true "Card update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Failure      409 {object} response.ErrorResponse "Version conflict"
// @Router       /cards/{cardId} [put]
func (h *CardHandler) UpdateCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.UpdateCard(c.Request.Context(), cardID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// ReorderCard godoc
// @Summary      Reorder card
// @Description  Moves a card before or after its named siblings within its column
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.ReorderRequest true "Anchor siblings"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      400 {object} response.ErrorResponse "Invalid anchors"
// @Failure      409 {object} response.ErrorResponse "Concurrent reorder conflict"
// @Router       /cards/{cardId}/reorder [post]
func (h *CardHandler) ReorderCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
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

	card, err := h.cardService.ReorderCard(c.Request.Context(), cardID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// MoveCard godoc
// @Summary      Move card
// @Description  Moves a card into another column, appending when no anchors are given
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.MoveCardRequest true "Target column and anchors"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card or column not found"
// @Router       /cards/{cardId}/move [post]
func (h *CardHandler) MoveCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.MoveCard(c.Request.Context(), cardID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// ArchiveCard godoc
// @Summary      Archive card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=map[string]string}
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Router       /cards/{cardId} [delete]
func (h *CardHandler) ArchiveCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.cardService.ArchiveCard(c.Request.Context(), cardID, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Card archived successfully"})
}

// RestoreCard godoc
// @Summary      Restore card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Router       /cards/{cardId}/restore [post]
func (h *CardHandler) RestoreCard(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.RestoreCard(c.Request.Context(), cardID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// AssignTag godoc
// @Summary      Assign tag to card
// @Tags         cards
// @Accept       json
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        request body dto.CardTagRequest true "Tag assignment request"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card or tag not found"
// @Router       /cards/{cardId}/tags [post]
func (h *CardHandler) AssignTag(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	var req dto.CardTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.AssignTag(c.Request.Context(), cardID, userID, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

// UnassignTag godoc
// @Summary      Unassign tag from card
// @Tags         cards
// @Produce      json
// @Param        cardId path string true "Card ID (UUID)"
// @Param        tagId path string true "Tag ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.CardResponse}
// @Failure      404 {object} response.ErrorResponse "Card not found"
// @Router       /cards/{cardId}/tags/{tagId} [delete]
func (h *CardHandler) UnassignTag(c *gin.Context) {
	cardID, ok := parseIDParam(c, "cardId")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	card, err := h.cardService.UnassignTag(c.Request.Context(), cardID, tagID, userID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, card)
}

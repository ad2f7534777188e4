package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/courserank/backend/internal/app/models"
	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/app/services"
	"github.com/courserank/backend/internal/middleware"
)

// ComparisonController handles comparison submission, history and pair
// selection
type ComparisonController struct {
	comparisonService *services.ComparisonService
	pairService       *services.PairService
	logger            zerolog.Logger
}

// NewComparisonController creates a new comparison controller
func NewComparisonController(comparisonService *services.ComparisonService, pairService *services.PairService, logger zerolog.Logger) *ComparisonController {
	return &ComparisonController{
		comparisonService: comparisonService,
		pairService:       pairService,
		logger:            logger,
	}
}

// Submit records a comparison
// @Summary Submit a comparison
// @Description Records which of two offerings the user judged higher in a category and updates both ratings
// @Tags comparisons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitComparisonRequest true "Comparison outcome"
// @Success 201 {object} dto.APIResponse{data=models.Comparison} "Comparison recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid pair, winner or category"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 409 {object} dto.ErrorResponse "Pair already compared in this category"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/comparisons [post]
func (c *ComparisonController) Submit(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req dto.SubmitComparisonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comparison, err := c.comparisonService.Submit(
		ctx.Request.Context(),
		userID,
		req.OfferingAID,
		req.OfferingBID,
		req.WinnerID,
		models.Category(req.Category),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("userId", userID).
		Int64("winnerId", comparison.WinnerID).
		Str("category", string(comparison.Category)).
		Msg("Comparison recorded")

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comparison,
		Timestamp: time.Now(),
	})
}

// List returns the user's comparison history
// @Summary List own comparisons
// @Description Lists the authenticated user's comparisons, most recent first
// @Tags comparisons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ComparisonResponse} "Comparison history"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/comparisons [get]
func (c *ComparisonController) List(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	comparisons, err := c.comparisonService.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      comparisons,
		Timestamp: time.Now(),
	})
}

// NextPair picks the next pair to compare
// @Summary Get the next pair
// @Description Picks the most informative unseen pair and category for the user to compare next
// @Tags comparisons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.NextPairResponse} "Next pair, or completed when every combination has been judged"
// @Failure 400 {object} dto.ErrorResponse "Fewer than two offerings on the course list"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/comparisons/next [get]
func (c *ComparisonController) NextPair(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	pair, err := c.pairService.NextPair(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      pair,
		Timestamp: time.Now(),
	})
}

// UndoLast removes the user's most recent comparison
// @Summary Undo the last comparison
// @Description Deletes the authenticated user's most recent comparison and applies a compensating rating update
// @Tags comparisons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Comparison} "Undone comparison"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Nothing to undo"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/comparisons/latest [delete]
func (c *ComparisonController) UndoLast(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	undone, err := c.comparisonService.UndoLast(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", userID).Int64("comparisonId", undone.ID).Msg("Comparison undone")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      undone,
		Timestamp: time.Now(),
	})
}

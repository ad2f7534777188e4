package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/courserank/backend/internal/app/models/dto"
	"github.com/courserank/backend/internal/app/services"
	"github.com/courserank/backend/internal/middleware"
)

// UserController handles the authenticated user's profile, course list,
// rankings and suggestions
type UserController struct {
	authService       *services.AuthService
	userCourseService *services.UserCourseService
	rankingService    *services.RankingService
	suggestionService *services.SuggestionService
	logger            zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(
	authService *services.AuthService,
	userCourseService *services.UserCourseService,
	rankingService *services.RankingService,
	suggestionService *services.SuggestionService,
	logger zerolog.Logger,
) *UserController {
	return &UserController{
		authService:       authService,
		userCourseService: userCourseService,
		rankingService:    rankingService,
		suggestionService: suggestionService,
		logger:            logger,
	}
}

// userIDFromContext reads the user id placed in the context by JWTAuth.
func userIDFromContext(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	userID, ok := value.(int64)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// GetProfile retrieves the authenticated user's profile
// @Summary Get own profile
// @Description Retrieves the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}

// ListCourses lists the offerings on the user's course list
// @Summary List own courses
// @Description Lists the offerings on the authenticated user's course list, most recently added first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OfferingResponse} "Course list"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/courses [get]
func (c *UserController) ListCourses(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	courses, err := c.userCourseService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// AddCourse puts an offering on the user's course list
// @Summary Add a course
// @Description Adds a course offering to the authenticated user's course list
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddUserCourseRequest true "Offering to add"
// @Success 201 {object} dto.APIResponse{data=dto.OfferingResponse} "Offering added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 409 {object} dto.ErrorResponse "Offering already on the list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/courses [post]
func (c *UserController) AddCourse(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req dto.AddUserCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	offering, err := c.userCourseService.Add(ctx.Request.Context(), userID, req.OfferingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", userID).Int64("offeringId", req.OfferingID).Msg("Offering added to course list")
	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      offering,
		Timestamp: time.Now(),
	})
}

// RemoveCourse takes an offering off the user's course list
// @Summary Remove a course
// @Description Removes an offering from the authenticated user's course list together with the user's comparisons involving it
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param offeringId path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Offering removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Offering not on the list"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/courses/{offeringId} [delete]
func (c *UserController) RemoveCourse(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	offeringID, err := strconv.ParseInt(ctx.Param("offeringId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering ID")
		errorDetail = errorDetail.WithDetails("Offering ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userCourseService.Remove(ctx.Request.Context(), userID, offeringID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", userID).Int64("offeringId", offeringID).Msg("Offering removed from course list")
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Offering removed from course list"},
		Timestamp: time.Now(),
	})
}

// GetRankings returns the user's personal ranking board
// @Summary Get own rankings
// @Description Ranks the offerings on the authenticated user's list by rating, compared offerings first
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.RankingEntry} "Ranking board"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/rankings [get]
func (c *UserController) GetRankings(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	rankings, err := c.rankingService.UserRankings(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rankings,
		Timestamp: time.Now(),
	})
}

// GetSuggestions returns course suggestions for the user
// @Summary Get course suggestions
// @Description Suggests catalog courses similar to the ones on the authenticated user's list
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of suggestions" default(4)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Suggested courses"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me/suggestions [get]
func (c *UserController) GetSuggestions(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	suggestions, err := c.suggestionService.Suggest(ctx.Request.Context(), userID, limit)
	if err != nil {
		c.logger.Error().Err(err).Int64("userId", userID).Msg("Suggestion lookup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      suggestions,
		Timestamp: time.Now(),
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	authMiddleware "github.com/edustream/backend/internal/auth/middleware"
	"github.com/edustream/backend/internal/models"
	"github.com/edustream/backend/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReviewService is the interface that wraps methods for course reviews
type ReviewService interface {
	// SubmitReview creates a review for a course the user has access to
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the author.
	// "courseID" is the ID of the course.
	// "req" holds the rating and optional comment.
	//
	// Returns the created review with author info and an error if any.
	SubmitReview(ctx context.Context, userID, courseID int, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	// EditReview updates a review owned by the user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the caller.
	// "reviewID" is the ID of the review.
	// "req" holds the new rating and comment.
	//
	// Returns an error if any.
	EditReview(ctx context.Context, userID, reviewID int, req *models.UpdateReviewRequest) error
	// RemoveReview deletes a review owned by the user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the caller.
	// "reviewID" is the ID of the review.
	//
	// Returns an error if any.
	RemoveReview(ctx context.Context, userID, reviewID int) error
	// ListCourseReviews retrieves a course's reviews, newest first
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the reviews with author info and an error if any.
	ListCourseReviews(ctx context.Context, courseID int) ([]models.ReviewResponse, error)
	// GetCourseRating aggregates a course's review ratings
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the average rating and review count and an error if any.
	GetCourseRating(ctx context.Context, courseID int) (*models.CourseRating, error)
}

// ReviewHandler handles HTTP requests for course reviews
type ReviewHandler struct {
	BaseHandler
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(svc ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all review handler routes
func (h *ReviewHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/courses/{id}/reviews", h.ListReviews)
	r.Get("/courses/{id}/rating", h.GetRating)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/courses/{id}/reviews", h.SubmitReview)
		r.Patch("/reviews/{id}", h.EditReview)
		r.Delete("/reviews/{id}", h.RemoveReview)
	})
}

// ListReviews handles GET /courses/{id}/reviews
// @Summary List course reviews
// @Description Get a course's reviews with author profiles, newest first
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.ReviewResponse "Reviews"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	reviews, err := h.service.ListCourseReviews(r.Context(), courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if reviews == nil {
		reviews = []models.ReviewResponse{}
	}
	h.RespondJSON(w, http.StatusOK, reviews)
}

// GetRating handles GET /courses/{id}/rating
// @Summary Get course rating
// @Description Get a course's average rating rounded to one decimal and its review count
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseRating "Rating summary"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/rating [get]
func (h *ReviewHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	rating, err := h.service.GetCourseRating(r.Context(), courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, rating)
}

// SubmitReview handles POST /courses/{id}/reviews
// @Summary Submit a review
// @Description Create a review; requires enrollment, ownership or a free course, one review per user per course
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body models.CreateReviewRequest true "Rating and optional comment"
// @Success 201 {object} models.ReviewResponse "Created review"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not enrolled"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Review already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/reviews [post]
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	review, err := h.service.SubmitReview(r.Context(), userID, courseID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, review)
}

// EditReview handles PATCH /reviews/{id}
// @Summary Edit a review
// @Description Update a review's rating and comment; only the author may edit
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Review ID"
// @Param request body models.UpdateReviewRequest true "New rating and comment"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Review not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reviews/{id} [patch]
func (h *ReviewHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	reviewID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	var req models.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if err := h.service.EditReview(r.Context(), userID, reviewID, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveReview handles DELETE /reviews/{id}
// @Summary Delete a review
// @Description Delete a review; only the author may delete
// @Tags reviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Review ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Review not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) RemoveReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	reviewID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	if err := h.service.RemoveReview(r.Context(), userID, reviewID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

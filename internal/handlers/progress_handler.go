package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	authMiddleware "github.com/edustream/backend/internal/auth/middleware"
	"github.com/edustream/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for lesson progress
type ProgressService interface {
	// SetLessonProgress records a user's completion state for a lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	// "isCompleted" is the completion state to record.
	//
	// Returns an error if any.
	SetLessonProgress(ctx context.Context, userID, lessonID int, isCompleted bool) error
	// GetCourseProgress aggregates a user's completion within a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the course progress and an error if any.
	GetCourseProgress(ctx context.Context, userID, courseID int) (*models.CourseProgress, error)
	// AggregateAcrossCourses computes per-course progress for each given course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseIDs" are the IDs of the courses to aggregate.
	//
	// Returns progress keyed by course ID and an error if any.
	AggregateAcrossCourses(ctx context.Context, userID int, courseIDs []int) (map[int]models.CourseProgress, error)
}

// EnrolledCourseLister retrieves the course IDs a user has purchased
type EnrolledCourseLister interface {
	// ListEnrolledCourseIDs retrieves the IDs of courses the user purchased
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the course IDs and an error if any.
	ListEnrolledCourseIDs(ctx context.Context, userID int) ([]int, error)
}

// ProgressHandler handles HTTP requests for lesson progress tracking
type ProgressHandler struct {
	BaseHandler
	service     ProgressService
	enrollments EnrolledCourseLister
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, enrollments EnrolledCourseLister, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		enrollments: enrollments,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Put("/lessons/{id}/progress", h.SetProgress)
		r.Get("/courses/{id}/progress", h.GetCourseProgress)
		r.Get("/progress", h.GetOverallProgress)
	})
}

// SetProgress handles PUT /lessons/{id}/progress
// @Summary Set lesson completion
// @Description Mark a lesson complete or incomplete for the caller; repeated writes converge on the latest state
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateProgressRequest true "Completion state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/progress [put]
func (h *ProgressHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var req models.UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetLessonProgress(r.Context(), userID, lessonID, req.IsCompleted); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCourseProgress handles GET /courses/{id}/progress
// @Summary Get course progress
// @Description Get the caller's completion counts and percentage for a course
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseProgress "Completion summary"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/progress [get]
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
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

	progress, err := h.service.GetCourseProgress(r.Context(), userID, courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetOverallProgress handles GET /progress
// @Summary Get progress across enrolled courses
// @Description Get the caller's completion summary for every enrolled course, keyed by course ID
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[int]models.CourseProgress "Progress per course"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress [get]
func (h *ProgressHandler) GetOverallProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseIDs, err := h.enrollments.ListEnrolledCourseIDs(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	progress, err := h.service.AggregateAcrossCourses(r.Context(), userID, courseIDs)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

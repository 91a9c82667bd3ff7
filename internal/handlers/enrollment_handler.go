package handlers

import (
	"context"
	"net/http"
	"strconv"

	authMiddleware "github.com/edustream/backend/internal/auth/middleware"
	"github.com/edustream/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EnrollmentService is the interface that wraps methods for enrollment
// and gated lesson access
type EnrollmentService interface {
	// GetLesson retrieves a lesson if the user may view it
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the caller; zero means anonymous.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetLesson(ctx context.Context, userID, lessonID int) (*models.Lesson, error)
	// Enroll grants a user access to a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the enrollment outcome and an error if any.
	Enroll(ctx context.Context, userID, courseID int) (*models.EnrollmentResult, error)
	// ListEnrolledCourseIDs retrieves the IDs of courses the user purchased
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns the course IDs and an error if any.
	ListEnrolledCourseIDs(ctx context.Context, userID int) ([]int, error)
}

// EnrollmentHandler handles HTTP requests for enrollment and lesson access
type EnrollmentHandler struct {
	BaseHandler
	service EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(svc EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all enrollment handler routes.
// The lesson route takes optional auth so free lessons stay reachable
// without a token.
func (h *EnrollmentHandler) RegisterRoutes(r chi.Router, auth, optionalAuth func(http.Handler) http.Handler) {
	r.With(optionalAuth).Get("/lessons/{id}", h.GetLesson)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/courses/{id}/enroll", h.Enroll)
		r.Get("/me/courses", h.ListEnrolledCourses)
	})
}

// GetLesson handles GET /lessons/{id}
// @Summary Get lesson content
// @Description Get a lesson with its content; locked lessons require enrollment or ownership
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson with content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 403 {object} map[string]string "Lesson is locked"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [get]
func (h *EnrollmentHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	// Anonymous callers get userID zero and can only see free lessons
	userID, _ := authMiddleware.GetUserID(r.Context())

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), userID, lessonID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// Enroll handles POST /courses/{id}/enroll
// @Summary Enroll in a course
// @Description Grant the caller access to a course at its current price; enrolling twice is a no-op
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.EnrollmentResult "Enrollment outcome"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/enroll [post]
func (h *EnrollmentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Enroll(r.Context(), userID, courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// ListEnrolledCourses handles GET /me/courses
// @Summary List enrolled course IDs
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} int "Course IDs"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /me/courses [get]
func (h *EnrollmentHandler) ListEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseIDs, err := h.service.ListEnrolledCourseIDs(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if courseIDs == nil {
		courseIDs = []int{}
	}
	h.RespondJSON(w, http.StatusOK, courseIDs)
}

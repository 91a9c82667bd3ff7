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

// LessonService is the interface that wraps methods for lesson authoring
type LessonService interface {
	// CreateLesson appends a placeholder lesson to a course
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "courseID" is the ID of the course.
	//
	// Returns the created lesson and an error if any.
	CreateLesson(ctx context.Context, instructorID, courseID int) (*models.Lesson, error)
	// UpdateLesson applies a partial update to a lesson
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "lessonID" is the ID of the lesson.
	// "req" holds the fields to update.
	//
	// Returns the updated lesson and an error if any.
	UpdateLesson(ctx context.Context, instructorID, lessonID int, req *models.UpdateLessonRequest) (*models.Lesson, error)
	// DeleteLesson deletes a lesson
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "lessonID" is the ID of the lesson.
	//
	// Returns an error if any.
	DeleteLesson(ctx context.Context, instructorID, lessonID int) error
	// ReorderLessons rewrites lesson positions within one course
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "courseID" is the ID of the course.
	// "updates" is the list of lesson position assignments.
	//
	// Returns an error if any.
	ReorderLessons(ctx context.Context, instructorID, courseID int, updates []models.LessonPositionUpdate) error
	// ListCourseLessons retrieves a course's lessons ordered by position
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the lessons and an error if any.
	ListCourseLessons(ctx context.Context, courseID int) ([]models.Lesson, error)
}

// LessonHandler handles HTTP requests for lesson authoring and curriculum
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, instructorOnly func(http.Handler) http.Handler) {
	r.Get("/courses/{id}/lessons", h.ListLessons)

	r.Group(func(r chi.Router) {
		r.Use(instructorOnly)
		r.Post("/courses/{id}/lessons", h.CreateLesson)
		r.Put("/courses/{id}/lessons/reorder", h.ReorderLessons)
		r.Patch("/lessons/{id}", h.UpdateLesson)
		r.Delete("/lessons/{id}", h.DeleteLesson)
	})
}

// ListLessons handles GET /courses/{id}/lessons
// @Summary List course curriculum
// @Description Get a course's lessons ordered by position; lesson bodies are omitted and served per lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} models.Lesson "Ordered lessons"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/lessons [get]
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	lessons, err := h.service.ListCourseLessons(r.Context(), courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	// The curriculum listing is metadata only so paid content
	// never leaks through it
	for i := range lessons {
		lessons[i].Content = nil
		lessons[i].VideoURL = nil
	}

	if lessons == nil {
		lessons = []models.Lesson{}
	}
	h.RespondJSON(w, http.StatusOK, lessons)
}

// CreateLesson handles POST /courses/{id}/lessons
// @Summary Create a lesson
// @Description Append a placeholder lesson at the end of the course
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 201 {object} models.Lesson "Created lesson"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
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

	lesson, err := h.service.CreateLesson(r.Context(), userID, courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, lesson)
}

// UpdateLesson handles PATCH /lessons/{id}
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Fields to update"
// @Success 200 {object} models.Lesson "Updated lesson"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [patch]
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	lesson, err := h.service.UpdateLesson(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// ReorderLessons handles PUT /courses/{id}/lessons/reorder
// @Summary Reorder course lessons
// @Description Rewrite the positions of a course's lessons in a single transaction
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body models.ReorderLessonsRequest true "Position assignments"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/lessons/reorder [put]
func (h *LessonHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
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

	var req models.ReorderLessonsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if err := h.service.ReorderLessons(r.Context(), userID, courseID, req.Updates); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson; positions of the remaining lessons are left untouched
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.DeleteLesson(r.Context(), userID, lessonID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

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

// CourseService is the interface that wraps methods for course operations
type CourseService interface {
	// CreateCourse creates a course owned by the instructor
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the instructor.
	// "req" is the course to create.
	//
	// Returns the created course and an error if any.
	CreateCourse(ctx context.Context, instructorID int, req *models.CreateCourseRequest) (*models.Course, error)
	// GetCourse retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	// ListPublishedCourses retrieves catalog entries with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "category" filters by category; empty or "All" disables the filter.
	// "search" is a title substring filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	ListPublishedCourses(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error)
	// GetSuggestions retrieves title suggestions for a search query
	//
	// "ctx" is the context for the request.
	// "query" is the search query.
	//
	// Returns a list of suggestions and an error if any.
	GetSuggestions(ctx context.Context, query string) ([]models.CourseSuggestion, error)
	// SetPublished changes course visibility
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "courseID" is the ID of the course.
	// "isPublished" is the new published state.
	//
	// Returns an error if any.
	SetPublished(ctx context.Context, instructorID, courseID int, isPublished bool) error
	// UpdateCoursePrice changes the course price
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "courseID" is the ID of the course.
	// "price" is the new price.
	//
	// Returns an error if any.
	UpdateCoursePrice(ctx context.Context, instructorID, courseID int, price float64) error
	// DeleteCourse deletes a course
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the caller.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	DeleteCourse(ctx context.Context, instructorID, courseID int) error
}

// CourseHandler handles HTTP requests for course operations
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, instructorOnly func(http.Handler) http.Handler) {
	r.Get("/courses", h.ListCourses)
	r.Get("/courses/suggestions", h.GetSuggestions)
	r.Get("/courses/{id}", h.GetCourse)

	r.Group(func(r chi.Router) {
		r.Use(instructorOnly)
		r.Post("/courses", h.CreateCourse)
		r.Patch("/courses/{id}/publish", h.SetPublished)
		r.Patch("/courses/{id}/price", h.UpdatePrice)
		r.Delete("/courses/{id}", h.DeleteCourse)
	})
}

// ListCourses handles GET /courses
// @Summary List published courses
// @Description Get a paginated list of published courses with optional category and title filters
// @Tags courses
// @Accept json
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Search by course title"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 12)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	count := 12
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}

	courses, err := h.service.ListPublishedCourses(r.Context(), category, search, page, count)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if courses == nil {
		courses = []models.CourseListItem{}
	}
	h.RespondJSON(w, http.StatusOK, courses)
}

// GetSuggestions handles GET /courses/suggestions
// @Summary Get search suggestions
// @Description Get up to five published course titles matching the query; queries shorter than two characters return an empty list
// @Tags courses
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.CourseSuggestion "List of suggestions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/suggestions [get]
func (h *CourseHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	suggestions, err := h.service.GetSuggestions(r.Context(), query)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if suggestions == nil {
		suggestions = []models.CourseSuggestion{}
	}
	h.RespondJSON(w, http.StatusOK, suggestions)
}

// GetCourse handles GET /courses/{id}
// @Summary Get course details
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course "Course details"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /courses
// @Summary Create a course
// @Description Create a course owned by the calling instructor; unknown categories fall back to the default
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCourseRequest true "Course to create"
// @Success 201 {object} models.Course "Created course"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	course, err := h.service.CreateCourse(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, course)
}

// SetPublished handles PATCH /courses/{id}/publish
// @Summary Publish or unpublish a course
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body models.PublishCourseRequest true "New published state"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/publish [patch]
func (h *CourseHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	var req models.PublishCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetPublished(r.Context(), userID, id, req.IsPublished); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdatePrice handles PATCH /courses/{id}/price
// @Summary Change course price
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body models.UpdateCoursePriceRequest true "New price"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/price [patch]
func (h *CourseHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	var req models.UpdateCoursePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if err := h.service.UpdateCoursePrice(r.Context(), userID, id, req.Price); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /courses/{id}
// @Summary Delete a course
// @Description Delete a course; lessons, enrollments, reviews and progress are removed with it
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	if err := h.service.DeleteCourse(r.Context(), userID, id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

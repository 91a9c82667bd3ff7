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

// AnalyticsService is the interface that wraps methods for instructor analytics
type AnalyticsService interface {
	// GetDashboardMetrics aggregates revenue, students and ratings across
	// all of an instructor's courses
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the instructor.
	//
	// Returns the metrics and an error if any.
	GetDashboardMetrics(ctx context.Context, instructorID int) (*models.DashboardMetrics, error)
	// GetRecentSales retrieves the instructor's most recent sales
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the instructor.
	// "limit" is the maximum number of sales to return.
	//
	// Returns the sales and an error if any.
	GetRecentSales(ctx context.Context, instructorID, limit int) ([]models.RecentSale, error)
}

// AnalyticsHandler handles HTTP requests for the instructor dashboard
type AnalyticsHandler struct {
	BaseHandler
	service AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(svc AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all analytics handler routes
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router, instructorOnly func(http.Handler) http.Handler) {
	r.Route("/analytics", func(r chi.Router) {
		r.Use(instructorOnly)
		r.Get("/metrics", h.GetMetrics)
		r.Get("/recent-sales", h.GetRecentSales)
	})
}

// GetMetrics handles GET /analytics/metrics
// @Summary Get dashboard metrics
// @Description Get total revenue, distinct students, course count and average rating for the caller's courses
// @Tags analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DashboardMetrics "Dashboard metrics"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/metrics [get]
func (h *AnalyticsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	metrics, err := h.service.GetDashboardMetrics(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, metrics)
}

// GetRecentSales handles GET /analytics/recent-sales
// @Summary Get recent sales
// @Description Get the caller's most recent sales with course and buyer info
// @Tags analytics
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of sales (default: 5)"
// @Success 200 {array} models.RecentSale "Recent sales"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /analytics/recent-sales [get]
func (h *AnalyticsHandler) GetRecentSales(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	sales, err := h.service.GetRecentSales(r.Context(), userID, limit)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	if sales == nil {
		sales = []models.RecentSale{}
	}
	h.RespondJSON(w, http.StatusOK, sales)
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	authMiddleware "github.com/edustream/backend/internal/auth/middleware"
	"github.com/edustream/backend/internal/cart"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CartManager is the interface that wraps methods for shopping carts
type CartManager interface {
	// GetCart retrieves the cart for an owner key
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	//
	// Returns the cart and an error if any.
	GetCart(ctx context.Context, key string) (*cart.Cart, error)
	// AddCourse puts a course into the cart
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	// "courseID" is the ID of the course.
	//
	// Returns the updated cart and an error if any.
	AddCourse(ctx context.Context, key string, courseID int) (*cart.Cart, error)
	// RemoveCourse takes a course out of the cart
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	// "courseID" is the ID of the course.
	//
	// Returns the updated cart and an error if any.
	RemoveCourse(ctx context.Context, key string, courseID int) (*cart.Cart, error)
	// ClearCart discards all items for an owner key
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	//
	// Returns an error if any.
	ClearCart(ctx context.Context, key string) error
}

// AddCartItemRequest represents a request to add a course to the cart
type AddCartItemRequest struct {
	CourseID int `json:"courseId"`
}

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	BaseHandler
	manager CartManager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(manager CartManager, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		manager:     manager,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all cart handler routes
func (h *CartHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Delete("/items/{courseID}", h.RemoveItem)
		r.Delete("/", h.ClearCart)
	})
}

// cartKey derives the storage key for a user's cart
func cartKey(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// GetCart handles GET /cart
// @Summary Get the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} cart.Cart "Cart contents"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	c, err := h.manager.GetCart(r.Context(), cartKey(userID))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, c)
}

// AddItem handles POST /cart/items
// @Summary Add a course to the cart
// @Description Add a course to the caller's cart; adding a course twice is a no-op
// @Tags cart
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body AddCartItemRequest true "Course to add"
// @Success 200 {object} cart.Cart "Updated cart"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CourseID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	c, err := h.manager.AddCourse(r.Context(), cartKey(userID), req.CourseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, c)
}

// RemoveItem handles DELETE /cart/items/{courseID}
// @Summary Remove a course from the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path int true "Course ID"
// @Success 200 {object} cart.Cart "Updated cart"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cart/items/{courseID} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course id")
		return
	}

	c, err := h.manager.RemoveCourse(r.Context(), cartKey(userID), courseID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, c)
}

// ClearCart handles DELETE /cart
// @Summary Clear the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.manager.ClearCart(r.Context(), cartKey(userID)); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

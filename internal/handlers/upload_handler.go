package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edustream/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadService is the interface that wraps methods for signed uploads
type UploadService interface {
	// GenerateSignature produces the parameters for a signed direct upload
	//
	// "folder" is the target folder; empty selects the default.
	//
	// Returns the signature parameters and an error if any.
	GenerateSignature(folder string) (*models.UploadSignature, error)
}

// UploadSignatureRequest represents a request for an upload signature
type UploadSignatureRequest struct {
	Folder string `json:"folder"`
}

// UploadHandler handles HTTP requests for media upload signing
type UploadHandler struct {
	BaseHandler
	service UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all upload handler routes
func (h *UploadHandler) RegisterRoutes(r chi.Router, instructorOnly func(http.Handler) http.Handler) {
	r.With(instructorOnly).Post("/uploads/signature", h.GenerateSignature)
}

// GenerateSignature handles POST /uploads/signature
// @Summary Sign a direct upload
// @Description Get the timestamped signature a client needs to upload media straight to storage
// @Tags uploads
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body UploadSignatureRequest true "Target folder"
// @Success 200 {object} models.UploadSignature "Signature parameters"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /uploads/signature [post]
func (h *UploadHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	var req UploadSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	signature, err := h.service.GenerateSignature(req.Folder)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, signature)
}

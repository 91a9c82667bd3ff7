package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/edustream/backend/internal/config"
	"github.com/edustream/backend/internal/models"
)

const defaultUploadFolder = "edustream"

type uploadService struct {
	cfg config.CloudinaryConfig
	now func() time.Time
}

// NewUploadService creates a new upload signature service
func NewUploadService(cfg config.CloudinaryConfig) *uploadService {
	return &uploadService{
		cfg: cfg,
		now: time.Now,
	}
}

// GenerateSignature produces the parameters for a signed direct upload.
// The signature is the SHA-1 hex digest of the sorted parameter string
// with the API secret appended, per the Cloudinary signing scheme.
func (s *uploadService) GenerateSignature(folder string) (*models.UploadSignature, error) {
	if s.cfg.CloudName == "" || s.cfg.APIKey == "" || s.cfg.APISecret == "" {
		return nil, fmt.Errorf("upload credentials are not configured")
	}

	if folder == "" {
		folder = defaultUploadFolder
	}

	timestamp := strconv.FormatInt(s.now().Unix(), 10)
	payload := fmt.Sprintf("folder=%s&timestamp=%s%s", folder, timestamp, s.cfg.APISecret)
	digest := sha1.Sum([]byte(payload))

	return &models.UploadSignature{
		Timestamp: timestamp,
		Signature: hex.EncodeToString(digest[:]),
		APIKey:    s.cfg.APIKey,
		CloudName: s.cfg.CloudName,
	}, nil
}

package services

import (
	"context"
	"fmt"
	"math"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

// ReviewRepository defines methods for review data access
type ReviewRepository interface {
	// GetByID retrieves a review by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the review.
	//
	// Returns the review and an error if any.
	GetByID(ctx context.Context, id int) (*models.Review, error)
	// ExistsByUserAndCourse checks if a user already reviewed a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	ExistsByUserAndCourse(ctx context.Context, userID, courseID int) (bool, error)
	// Create creates a new review
	//
	// "ctx" is the context for the request.
	// "review" is the review to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, review *models.Review) error
	// Update rewrites the rating and comment of a review
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the review.
	// "rating" is the new rating.
	// "comment" is the new comment; nil clears it.
	//
	// Returns an error if any.
	Update(ctx context.Context, id, rating int, comment *string) error
	// Delete deletes a review by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the review.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// ListByCourse retrieves a course's reviews newest-first with author profiles
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of reviews and an error if any.
	ListByCourse(ctx context.Context, courseID int) ([]models.ReviewResponse, error)
	// RatingByCourse retrieves the mean rating and review count for a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the mean, the count and an error if any.
	RatingByCourse(ctx context.Context, courseID int) (float64, int, error)
	// RatingByCourses retrieves the mean rating and review count across courses
	//
	// "ctx" is the context for the request.
	// "courseIDs" is the list of course IDs.
	//
	// Returns the mean, the count and an error if any.
	RatingByCourses(ctx context.Context, courseIDs []int) (float64, int, error)
}

// ProfileRepository defines methods for display profile data access
type ProfileRepository interface {
	// GetByID retrieves a display profile by user ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the user.
	//
	// Returns the profile and an error if any.
	GetByID(ctx context.Context, id int) (*models.Profile, error)
}

type reviewService struct {
	courseRepo   CourseRepository
	purchaseRepo PurchaseRepository
	reviewRepo   ReviewRepository
	profileRepo  ProfileRepository
	notifier     Notifier
}

// NewReviewService creates a new review service
func NewReviewService(
	courseRepo CourseRepository,
	purchaseRepo PurchaseRepository,
	reviewRepo ReviewRepository,
	profileRepo ProfileRepository,
	notifier Notifier,
) *reviewService {
	return &reviewService{
		courseRepo:   courseRepo,
		purchaseRepo: purchaseRepo,
		reviewRepo:   reviewRepo,
		profileRepo:  profileRepo,
		notifier:     notifier,
	}
}

// SubmitReview creates a review for a course. Only users with access to
// the course may review it, and each user gets one review per course.
func (s *reviewService) SubmitReview(ctx context.Context, userID, courseID int, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.hasAccess(ctx, userID, course)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrNotEnrolled
	}

	exists, err := s.reviewRepo.ExistsByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check review existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		UserID:   userID,
		CourseID: courseID,
		Rating:   req.Rating,
		Comment:  optionalString(req.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Notification failures never affect the review outcome
	_ = s.notifier.PublishInsert(ctx, "reviews")

	response := &models.ReviewResponse{Review: *review}

	// Reviews without a profile row render as anonymous
	if profile, err := s.profileRepo.GetByID(ctx, userID); err == nil {
		response.Author = profile
	}

	return response, nil
}

// EditReview rewrites the rating and comment of the caller's own review
func (s *reviewService) EditReview(ctx context.Context, userID, reviewID int, req *models.UpdateReviewRequest) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return fmt.Errorf("%w: review %d", apperrors.ErrUnauthorized, reviewID)
	}

	if err := s.reviewRepo.Update(ctx, reviewID, req.Rating, optionalString(req.Comment)); err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

// RemoveReview deletes the caller's own review
func (s *reviewService) RemoveReview(ctx context.Context, userID, reviewID int) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		return fmt.Errorf("%w: review %d", apperrors.ErrUnauthorized, reviewID)
	}

	return s.reviewRepo.Delete(ctx, reviewID)
}

// ListCourseReviews retrieves a course's reviews newest-first
func (s *reviewService) ListCourseReviews(ctx context.Context, courseID int) ([]models.ReviewResponse, error) {
	return s.reviewRepo.ListByCourse(ctx, courseID)
}

// GetCourseRating retrieves the course's mean rating, rounded to one
// decimal place, together with the review count
func (s *reviewService) GetCourseRating(ctx context.Context, courseID int) (*models.CourseRating, error) {
	average, count, err := s.reviewRepo.RatingByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course rating: %w", err)
	}

	return &models.CourseRating{
		Average: roundToOneDecimal(average),
		Count:   count,
	}, nil
}

// hasAccess mirrors the lesson gate at course granularity: free courses,
// owned courses and purchased courses are reviewable
func (s *reviewService) hasAccess(ctx context.Context, userID int, course *models.Course) (bool, error) {
	if course.IsFree() {
		return true, nil
	}
	if course.InstructorID == userID {
		return true, nil
	}

	enrolled, err := s.purchaseRepo.Exists(ctx, userID, course.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return enrolled, nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

package services

import (
	"context"
	"fmt"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

// PurchaseRepository defines methods for purchase data access
type PurchaseRepository interface {
	// Exists checks if a purchase exists for a user and course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns a boolean and an error if any.
	Exists(ctx context.Context, userID, courseID int) (bool, error)
	// Create creates a new purchase record
	//
	// "ctx" is the context for the request.
	// "purchase" is the purchase to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, purchase *models.Purchase) error
	// ListCourseIDsByUser retrieves the course IDs a user is enrolled in,
	// most recent first
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of course IDs and an error if any.
	ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error)
	// GetByCourseIDs retrieves all purchases for the given courses
	//
	// "ctx" is the context for the request.
	// "courseIDs" is the list of course IDs.
	//
	// Returns a list of purchases and an error if any.
	GetByCourseIDs(ctx context.Context, courseIDs []int) ([]models.Purchase, error)
	// RecentByInstructor retrieves the latest purchases of an instructor's courses
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the instructor.
	// "limit" is the maximum number of sales to return.
	//
	// Returns a list of recent sales and an error if any.
	RecentByInstructor(ctx context.Context, instructorID, limit int) ([]models.RecentSale, error)
}

// Notifier publishes row insert events for dashboard refresh
type Notifier interface {
	// PublishInsert announces that a row was inserted into a table
	//
	// "ctx" is the context for the request.
	// "table" is the name of the table.
	//
	// Returns an error if any.
	PublishInsert(ctx context.Context, table string) error
}

type enrollmentService struct {
	courseRepo   CourseRepository
	lessonRepo   LessonRepository
	purchaseRepo PurchaseRepository
	notifier     Notifier
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	purchaseRepo PurchaseRepository,
	notifier Notifier,
) *enrollmentService {
	return &enrollmentService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		purchaseRepo: purchaseRepo,
		notifier:     notifier,
	}
}

// CanViewLesson reports whether a user may access lesson content.
// Free lessons are visible to everyone, including anonymous users.
func (s *enrollmentService) CanViewLesson(ctx context.Context, userID, lessonID int) (bool, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return false, err
	}

	return s.canView(ctx, userID, lesson)
}

// GetLesson retrieves a lesson, enforcing the access gate.
// Locked lessons return ErrUnauthorized.
func (s *enrollmentService) GetLesson(ctx context.Context, userID, lessonID int) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canView(ctx, userID, lesson)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: lesson %d is locked", apperrors.ErrUnauthorized, lessonID)
	}

	return lesson, nil
}

// Enroll grants a user access to a course. Enrolling twice is a no-op;
// the result reports whether the enrollment already existed. The course
// price at the moment of enrollment is recorded on the purchase row.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID int) (*models.EnrollmentResult, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.purchaseRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if enrolled {
		return &models.EnrollmentResult{Success: true, AlreadyEnrolled: true}, nil
	}

	purchase := &models.Purchase{
		UserID:   userID,
		CourseID: courseID,
		Price:    course.Price,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	// Notification failures never affect the enrollment outcome
	_ = s.notifier.PublishInsert(ctx, "purchases")

	return &models.EnrollmentResult{Success: true, AlreadyEnrolled: false}, nil
}

// ListEnrolledCourseIDs retrieves the course IDs a user is enrolled in
func (s *enrollmentService) ListEnrolledCourseIDs(ctx context.Context, userID int) ([]int, error) {
	return s.purchaseRepo.ListCourseIDsByUser(ctx, userID)
}

// canView checks the access chain cheapest first: free flag, course
// ownership, then the purchase lookup
func (s *enrollmentService) canView(ctx context.Context, userID int, lesson *models.Lesson) (bool, error) {
	if lesson.IsFree {
		return true, nil
	}

	if userID == 0 {
		return false, nil
	}

	course, err := s.courseRepo.GetByID(ctx, lesson.CourseID)
	if err != nil {
		return false, err
	}
	if course.InstructorID == userID {
		return true, nil
	}

	enrolled, err := s.purchaseRepo.Exists(ctx, userID, lesson.CourseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return enrolled, nil
}

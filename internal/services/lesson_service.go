package services

import (
	"context"
	"fmt"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetByID retrieves a lesson by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetByCourseID retrieves the lessons of a course in display order
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns a list of lessons and an error if any.
	GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error)
	// MaxPosition retrieves the highest lesson position in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the position, whether any lesson exists, and an error if any.
	MaxPosition(ctx context.Context, courseID int) (int, bool, error)
	// CountByCourse counts the lessons in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns the count and an error if any.
	CountByCourse(ctx context.Context, courseID int) (int, error)
	// Create creates a new lesson
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update applies a partial lesson update
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	// "req" is the update to apply.
	//
	// Returns an error if any.
	Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error
	// UpdatePositions rewrites lesson positions for a course atomically
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course the lessons belong to.
	// "updates" is the list of position assignments.
	//
	// Returns an error if any.
	UpdatePositions(ctx context.Context, courseID int, updates []models.LessonPositionUpdate) error
	// Delete deletes a lesson by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
}

type lessonService struct {
	courseRepo CourseRepository
	lessonRepo LessonRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(courseRepo CourseRepository, lessonRepo LessonRepository) *lessonService {
	return &lessonService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
	}
}

// CreateLesson appends a placeholder lesson to the end of the course.
// The new position is one past the current maximum, so gaps left by
// deletions are never reused. The first lesson lands at position 0.
func (s *lessonService) CreateLesson(ctx context.Context, instructorID, courseID int) (*models.Lesson, error) {
	if err := s.requireCourseOwnership(ctx, instructorID, courseID); err != nil {
		return nil, err
	}

	max, found, err := s.lessonRepo.MaxPosition(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get max position: %w", err)
	}

	position := 0
	if found {
		position = max + 1
	}

	lesson := &models.Lesson{
		CourseID: courseID,
		Title:    models.NewLessonTitle,
		IsFree:   false,
		Position: position,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("%w: failed to create lesson: %v", apperrors.ErrPersistence, err)
	}

	return lesson, nil
}

// UpdateLesson applies a partial update after verifying ownership
func (s *lessonService) UpdateLesson(ctx context.Context, instructorID, lessonID int, req *models.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.requireCourseOwnership(ctx, instructorID, lesson.CourseID); err != nil {
		return nil, err
	}

	if err := s.lessonRepo.Update(ctx, lessonID, req); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	return s.lessonRepo.GetByID(ctx, lessonID)
}

// DeleteLesson deletes a lesson after verifying ownership
func (s *lessonService) DeleteLesson(ctx context.Context, instructorID, lessonID int) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}

	if err := s.requireCourseOwnership(ctx, instructorID, lesson.CourseID); err != nil {
		return err
	}

	return s.lessonRepo.Delete(ctx, lessonID)
}

// ReorderLessons rewrites lesson positions within a course in one transaction
func (s *lessonService) ReorderLessons(ctx context.Context, instructorID, courseID int, updates []models.LessonPositionUpdate) error {
	if err := s.requireCourseOwnership(ctx, instructorID, courseID); err != nil {
		return err
	}

	if err := s.lessonRepo.UpdatePositions(ctx, courseID, updates); err != nil {
		return fmt.Errorf("failed to reorder lessons: %w", err)
	}

	return nil
}

// ListCourseLessons retrieves the lessons of a course in display order
func (s *lessonService) ListCourseLessons(ctx context.Context, courseID int) ([]models.Lesson, error) {
	return s.lessonRepo.GetByCourseID(ctx, courseID)
}

func (s *lessonService) requireCourseOwnership(ctx context.Context, instructorID, courseID int) error {
	owns, err := s.courseRepo.CheckOwnership(ctx, courseID, instructorID)
	if err != nil {
		return fmt.Errorf("failed to check course ownership: %w", err)
	}
	if !owns {
		return fmt.Errorf("%w: course %d", apperrors.ErrUnauthorized, courseID)
	}

	return nil
}

package services

import (
	"context"
	"fmt"
	"math"

	"github.com/edustream/backend/internal/models"
)

// ProgressRepository defines methods for lesson progress data access
type ProgressRepository interface {
	// Upsert writes the completion flag for a (user, lesson) pair
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonID" is the ID of the lesson.
	// "isCompleted" is the completion flag to store.
	//
	// Returns an error if any.
	Upsert(ctx context.Context, userID, lessonID int, isCompleted bool) error
	// CountCompletedByCourse counts a user's completed lessons within a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns the count and an error if any.
	CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error)
}

type progressService struct {
	lessonRepo   LessonRepository
	progressRepo ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(lessonRepo LessonRepository, progressRepo ProgressRepository) *progressService {
	return &progressService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
	}
}

// SetLessonProgress records a user's completion flag for a lesson.
// Writing the same flag twice converges to a single row.
func (s *progressService) SetLessonProgress(ctx context.Context, userID, lessonID int, isCompleted bool) error {
	if _, err := s.lessonRepo.GetByID(ctx, lessonID); err != nil {
		return err
	}

	if err := s.progressRepo.Upsert(ctx, userID, lessonID, isCompleted); err != nil {
		return fmt.Errorf("failed to set lesson progress: %w", err)
	}

	return nil
}

// GetCourseProgress aggregates a user's completion within a course.
// A course with no lessons reports zero percent.
func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID int) (*models.CourseProgress, error) {
	total, err := s.lessonRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}

	if total == 0 {
		return &models.CourseProgress{}, nil
	}

	completed, err := s.progressRepo.CountCompletedByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return &models.CourseProgress{
		Completed:  completed,
		Total:      total,
		Percentage: int(math.Round(float64(completed) / float64(total) * 100)),
	}, nil
}

// AggregateAcrossCourses computes per-course progress for each given course.
// Each course is queried independently.
func (s *progressService) AggregateAcrossCourses(ctx context.Context, userID int, courseIDs []int) (map[int]models.CourseProgress, error) {
	result := make(map[int]models.CourseProgress, len(courseIDs))
	for _, courseID := range courseIDs {
		progress, err := s.GetCourseProgress(ctx, userID, courseID)
		if err != nil {
			return nil, err
		}
		result[courseID] = *progress
	}

	return result, nil
}

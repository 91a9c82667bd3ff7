package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

const (
	defaultCatalogPageSize = 12
	maxSuggestions         = 5
	minSuggestionQueryLen  = 2
)

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// ListPublished retrieves published courses with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "category" filters by category; empty or "All" disables the filter.
	// "search" is a title substring filter.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	ListPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error)
	// Suggestions retrieves published courses whose title matches the query
	//
	// "ctx" is the context for the request.
	// "query" is the title substring to match.
	// "limit" is the maximum number of suggestions.
	//
	// Returns a list of suggestions and an error if any.
	Suggestions(ctx context.Context, query string, limit int) ([]models.CourseSuggestion, error)
	// ListIDsByInstructor retrieves the IDs of an instructor's courses
	//
	// "ctx" is the context for the request.
	// "instructorID" is the ID of the instructor.
	//
	// Returns a list of course IDs and an error if any.
	ListIDsByInstructor(ctx context.Context, instructorID int) ([]int, error)
	// Create creates a new course
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, course *models.Course) error
	// UpdatePublish updates the published flag of a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "isPublished" is the new published state.
	//
	// Returns an error if any.
	UpdatePublish(ctx context.Context, id int, isPublished bool) error
	// UpdatePrice updates the price of a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "price" is the new price.
	//
	// Returns an error if any.
	UpdatePrice(ctx context.Context, id int, price float64) error
	// Delete deletes a course and its dependent rows
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	Delete(ctx context.Context, id int) error
	// CheckOwnership checks if a course belongs to an instructor
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "instructorID" is the ID of the instructor.
	//
	// Returns a boolean and an error if any.
	CheckOwnership(ctx context.Context, id, instructorID int) (bool, error)
}

type courseService struct {
	courseRepo CourseRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository) *courseService {
	return &courseService{
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a course owned by the instructor
func (s *courseService) CreateCourse(ctx context.Context, instructorID int, req *models.CreateCourseRequest) (*models.Course, error) {
	category := req.Category
	if category == "" || !slices.Contains(models.CourseCategories, category) {
		category = models.DefaultCourseCategory
	}

	course := &models.Course{
		InstructorID: instructorID,
		Title:        req.Title,
		Description:  optionalString(req.Description),
		Category:     category,
		Price:        req.Price,
		ThumbnailURL: optionalString(req.Thumbnail),
		IsPublished:  req.IsPublished,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// GetCourse retrieves a course by ID
func (s *courseService) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// ListPublishedCourses retrieves catalog entries with filtering and pagination
func (s *courseService) ListPublishedCourses(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = defaultCatalogPageSize
	}

	return s.courseRepo.ListPublished(ctx, category, search, page, count)
}

// GetSuggestions retrieves title suggestions for a search query.
// Queries shorter than two characters return no suggestions.
func (s *courseService) GetSuggestions(ctx context.Context, query string) ([]models.CourseSuggestion, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSuggestionQueryLen {
		return nil, nil
	}

	return s.courseRepo.Suggestions(ctx, query, maxSuggestions)
}

// SetPublished changes course visibility after verifying ownership
func (s *courseService) SetPublished(ctx context.Context, instructorID, courseID int, isPublished bool) error {
	if err := s.requireOwnership(ctx, instructorID, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.UpdatePublish(ctx, courseID, isPublished); err != nil {
		return fmt.Errorf("failed to update publish state: %w", err)
	}

	return nil
}

// UpdateCoursePrice changes the course price after verifying ownership
func (s *courseService) UpdateCoursePrice(ctx context.Context, instructorID, courseID int, price float64) error {
	if err := s.requireOwnership(ctx, instructorID, courseID); err != nil {
		return err
	}

	if err := s.courseRepo.UpdatePrice(ctx, courseID, price); err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}

	return nil
}

// DeleteCourse deletes a course after verifying ownership
func (s *courseService) DeleteCourse(ctx context.Context, instructorID, courseID int) error {
	if err := s.requireOwnership(ctx, instructorID, courseID); err != nil {
		return err
	}

	return s.courseRepo.Delete(ctx, courseID)
}

// requireOwnership returns ErrUnauthorized unless the course belongs to the instructor
func (s *courseService) requireOwnership(ctx context.Context, instructorID, courseID int) error {
	owns, err := s.courseRepo.CheckOwnership(ctx, courseID, instructorID)
	if err != nil {
		return fmt.Errorf("failed to check course ownership: %w", err)
	}
	if !owns {
		return fmt.Errorf("%w: course %d", apperrors.ErrUnauthorized, courseID)
	}

	return nil
}

// optionalString maps the empty string to nil
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

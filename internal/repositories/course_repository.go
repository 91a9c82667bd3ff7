package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, instructor_id, title, description, category, price, thumbnail_url, is_published, created_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.InstructorID,
		&course.Title,
		&course.Description,
		&course.Category,
		&course.Price,
		&course.ThumbnailURL,
		&course.IsPublished,
		&course.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: course %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// ListPublished retrieves published courses with optional category filter, title search and pagination
func (r *courseRepository) ListPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, "is_published = TRUE")
	if category != "" && category != "All" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	if search != "" {
		conditions = append(conditions, "title LIKE ?")
		args = append(args, "%"+search+"%")
	}

	query := fmt.Sprintf(`
		SELECT id, title, category, price, thumbnail_url
		FROM courses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, strings.Join(conditions, " AND "))

	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Category,
			&course.Price,
			&course.ThumbnailURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Suggestions retrieves published courses whose title matches the query
func (r *courseRepository) Suggestions(ctx context.Context, query string, limit int) ([]models.CourseSuggestion, error) {
	sqlQuery := `
		SELECT id, title
		FROM courses
		WHERE title LIKE ? AND is_published = TRUE
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query course suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.CourseSuggestion
	for rows.Next() {
		var suggestion models.CourseSuggestion
		if err := rows.Scan(&suggestion.ID, &suggestion.Title); err != nil {
			return nil, fmt.Errorf("failed to scan course suggestion: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return suggestions, nil
}

// ListIDsByInstructor retrieves the IDs of all courses owned by an instructor
func (r *courseRepository) ListIDsByInstructor(ctx context.Context, instructorID int) ([]int, error) {
	query := `SELECT id FROM courses WHERE instructor_id = ?`

	rows, err := r.db.QueryContext(ctx, query, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query instructor courses: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan course id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (instructor_id, title, description, category, price, thumbnail_url, is_published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.InstructorID,
		course.Title,
		course.Description,
		course.Category,
		course.Price,
		course.ThumbnailURL,
		course.IsPublished,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// UpdatePublish updates the published flag of a course
func (r *courseRepository) UpdatePublish(ctx context.Context, id int, isPublished bool) error {
	query := `UPDATE courses SET is_published = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, isPublished, id)
	if err != nil {
		return fmt.Errorf("failed to update course publish state: %w", err)
	}

	return nil
}

// UpdatePrice updates the price of a course
func (r *courseRepository) UpdatePrice(ctx context.Context, id int, price float64) error {
	query := `UPDATE courses SET price = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, price, id)
	if err != nil {
		return fmt.Errorf("failed to update course price: %w", err)
	}

	return nil
}

// Delete deletes a course; lessons, purchases, reviews and progress rows
// are removed by foreign key cascades
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: course %d", apperrors.ErrNotFound, id)
	}

	return nil
}

// CheckOwnership checks if a course belongs to an instructor
func (r *courseRepository) CheckOwnership(ctx context.Context, id, instructorID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ? AND instructor_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id, instructorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	return exists, nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, video_url, is_free, position
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Content,
		&lesson.VideoURL,
		&lesson.IsFree,
		&lesson.Position,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: lesson %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByCourseID retrieves all lessons for a course, sorted ascending by
// position with the row id as tiebreak
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := `
		SELECT id, course_id, title, content, video_url, is_free, position
		FROM lessons
		WHERE course_id = ?
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.CourseID,
			&lesson.Title,
			&lesson.Content,
			&lesson.VideoURL,
			&lesson.IsFree,
			&lesson.Position,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// MaxPosition retrieves the highest lesson position in a course.
// The second return value is false when the course has no lessons.
func (r *lessonRepository) MaxPosition(ctx context.Context, courseID int) (int, bool, error) {
	query := `SELECT MAX(position) FROM lessons WHERE course_id = ?`

	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max lesson position: %w", err)
	}

	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// CountByCourse counts the lessons in a course
func (r *lessonRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	return count, nil
}

// Create creates a new lesson
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, content, video_url, is_free, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.CourseID,
		lesson.Title,
		lesson.Content,
		lesson.VideoURL,
		lesson.IsFree,
		lesson.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update applies a partial lesson update. Title and is_free are always
// written; content, video_url and position are written only when provided,
// and a pointer to the empty string clears the column.
func (r *lessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	setParts := []string{"title = ?", "is_free = ?"}
	args := []any{req.Title, req.IsFree}

	if req.Content != nil {
		setParts = append(setParts, "content = ?")
		args = append(args, nullIfEmpty(*req.Content))
	}
	if req.VideoURL != nil {
		setParts = append(setParts, "video_url = ?")
		args = append(args, nullIfEmpty(*req.VideoURL))
	}
	if req.Position != nil {
		setParts = append(setParts, "position = ?")
		args = append(args, *req.Position)
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	return nil
}

// UpdatePositions rewrites lesson positions for a course in a single
// transaction; every write is scoped by course_id so a reorder can never
// move another course's lesson
func (r *lessonRepository) UpdatePositions(ctx context.Context, courseID int, updates []models.LessonPositionUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE lessons SET position = ? WHERE id = ? AND course_id = ?`
	for _, update := range updates {
		if _, err := tx.ExecContext(ctx, query, update.Position, update.ID, courseID); err != nil {
			return fmt.Errorf("failed to update lesson position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position updates: %w", err)
	}

	return nil
}

// Delete deletes a lesson by ID; sibling positions are left untouched
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM lessons WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: lesson %d", apperrors.ErrNotFound, id)
	}

	return nil
}

// nullIfEmpty maps the empty string to a SQL NULL
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

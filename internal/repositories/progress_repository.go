package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// Upsert writes the completion flag for a (user, lesson) pair.
// The row is keyed on the pair, so repeated writes converge to the last value.
func (r *progressRepository) Upsert(ctx context.Context, userID, lessonID int, isCompleted bool) error {
	query := `
		INSERT INTO user_progress (user_id, lesson_id, is_completed, updated_at)
		VALUES (?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE is_completed = VALUES(is_completed), updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, userID, lessonID, isCompleted)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}

	return nil
}

// CountCompletedByCourse counts a user's completed lessons within a course
func (r *progressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_progress up
		INNER JOIN lessons l ON l.id = up.lesson_id
		WHERE up.user_id = ? AND up.is_completed = TRUE AND l.course_id = ?
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}

	return count, nil
}

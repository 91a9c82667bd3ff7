package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// GetByID retrieves a review by its ID
func (r *reviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	query := `
		SELECT id, user_id, course_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE id = ?
		LIMIT 1
	`

	var review models.Review
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.CourseID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: review %d", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return &review, nil
}

// ExistsByUserAndCourse checks if a user already reviewed a course
func (r *reviewRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = ? AND course_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}

	return exists, nil
}

// Create creates a new review
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, course_id, rating, comment)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		review.UserID,
		review.CourseID,
		review.Rating,
		review.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = int(id)
	return nil
}

// Update rewrites the rating and comment of a review
func (r *reviewRepository) Update(ctx context.Context, id, rating int, comment *string) error {
	query := `UPDATE reviews SET rating = ?, comment = ?, updated_at = NOW() WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, rating, comment, id)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

// Delete deletes a review by ID
func (r *reviewRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reviews WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: review %d", apperrors.ErrNotFound, id)
	}

	return nil
}

// ListByCourse retrieves reviews for a course newest-first, each joined
// with the author's display profile when one exists
func (r *reviewRepository) ListByCourse(ctx context.Context, courseID int) ([]models.ReviewResponse, error) {
	query := `
		SELECT r.id, r.user_id, r.course_id, r.rating, r.comment, r.created_at, r.updated_at,
			p.id, p.first_name, p.last_name, p.avatar_url
		FROM reviews r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.course_id = ?
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ReviewResponse
	for rows.Next() {
		var review models.ReviewResponse
		var profileID sql.NullInt64
		var firstName, lastName, avatarURL sql.NullString
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.CourseID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&profileID,
			&firstName,
			&lastName,
			&avatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		if profileID.Valid {
			author := &models.Profile{
				ID:        int(profileID.Int64),
				FirstName: firstName.String,
				LastName:  lastName.String,
			}
			if avatarURL.Valid {
				author.AvatarURL = &avatarURL.String
			}
			review.Author = author
		}

		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return reviews, nil
}

// RatingByCourse retrieves the mean rating and review count for a course.
// The mean is 0 when the course has no reviews.
func (r *reviewRepository) RatingByCourse(ctx context.Context, courseID int) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE course_id = ?`

	var average float64
	var count int
	err := r.db.QueryRowContext(ctx, query, courseID).Scan(&average, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get course rating: %w", err)
	}

	return average, count, nil
}

// RatingByCourses retrieves the mean rating and review count across courses
func (r *reviewRepository) RatingByCourses(ctx context.Context, courseIDs []int) (float64, int, error) {
	if len(courseIDs) == 0 {
		return 0, 0, nil
	}

	placeholders := strings.Repeat("?,", len(courseIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE course_id IN (%s)`, placeholders)

	args := make([]any, 0, len(courseIDs))
	for _, id := range courseIDs {
		args = append(args, id)
	}

	var average float64
	var count int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&average, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get rating across courses: %w", err)
	}

	return average, count, nil
}

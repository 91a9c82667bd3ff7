package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/edustream/backend/internal/models"
)

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *sql.DB) *purchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// Exists checks if a purchase exists for a user and course
func (r *purchaseRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM purchases WHERE user_id = ? AND course_id = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check purchase existence: %w", err)
	}

	return exists, nil
}

// Create creates a new purchase record
func (r *purchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (user_id, course_id, price)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		purchase.UserID,
		purchase.CourseID,
		purchase.Price,
	)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	purchase.ID = int(id)
	return nil
}

// ListCourseIDsByUser retrieves the IDs of all courses a user is enrolled in
func (r *purchaseRepository) ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	query := `SELECT course_id FROM purchases WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user purchases: %w", err)
	}
	defer rows.Close()

	var courseIDs []int
	for rows.Next() {
		var courseID int
		if err := rows.Scan(&courseID); err != nil {
			return nil, fmt.Errorf("failed to scan course id: %w", err)
		}
		courseIDs = append(courseIDs, courseID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courseIDs, nil
}

// GetByCourseIDs retrieves all purchases for the given courses
func (r *purchaseRepository) GetByCourseIDs(ctx context.Context, courseIDs []int) ([]models.Purchase, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(courseIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT id, user_id, course_id, price, created_at
		FROM purchases
		WHERE course_id IN (%s)
	`, placeholders)

	args := make([]any, 0, len(courseIDs))
	for _, id := range courseIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []models.Purchase
	for rows.Next() {
		var purchase models.Purchase
		err := rows.Scan(
			&purchase.ID,
			&purchase.UserID,
			&purchase.CourseID,
			&purchase.Price,
			&purchase.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return purchases, nil
}

// RecentByInstructor retrieves the latest purchases of an instructor's
// courses joined with buyer display names
func (r *purchaseRepository) RecentByInstructor(ctx context.Context, instructorID, limit int) ([]models.RecentSale, error) {
	query := `
		SELECT c.title, COALESCE(CONCAT(pr.first_name, ' ', pr.last_name), ''), p.price, p.created_at
		FROM purchases p
		INNER JOIN courses c ON c.id = p.course_id
		LEFT JOIN profiles pr ON pr.id = p.user_id
		WHERE c.instructor_id = ?
		ORDER BY p.created_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, instructorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sales: %w", err)
	}
	defer rows.Close()

	var sales []models.RecentSale
	for rows.Next() {
		var sale models.RecentSale
		err := rows.Scan(
			&sale.CourseTitle,
			&sale.BuyerName,
			&sale.Price,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sales, nil
}

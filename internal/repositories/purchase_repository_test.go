package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edustream/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPurchaseTestRepository creates a purchase repository with a mock database
func setupPurchaseTestRepository(t *testing.T) (*purchaseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPurchaseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestPurchaseRepository_Exists(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		courseID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedValue bool
	}{
		{
			name:     "success - purchase exists",
			userID:   1,
			courseID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXISTS(SELECT 1 FROM purchases WHERE user_id = ? AND course_id = ?)"}).
					AddRow(true)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM purchases WHERE user_id = \? AND course_id = \?\)`).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: true,
		},
		{
			name:     "success - purchase does not exist",
			userID:   1,
			courseID: 3,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"EXISTS(SELECT 1 FROM purchases WHERE user_id = ? AND course_id = ?)"}).
					AddRow(false)
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM purchases WHERE user_id = \? AND course_id = \?\)`).
					WithArgs(1, 3).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedValue: false,
		},
		{
			name:     "database error",
			userID:   1,
			courseID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM purchases WHERE user_id = \? AND course_id = \?\)`).
					WithArgs(1, 2).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
			expectedValue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPurchaseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.Exists(context.Background(), tt.userID, tt.courseID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.False(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		purchase      *models.Purchase
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			purchase: &models.Purchase{
				UserID:   1,
				CourseID: 2,
				Price:    49.99,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO purchases \(user_id, course_id, price\)`).
					WithArgs(1, 2, 49.99).
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedError: false,
			expectedID:    5,
		},
		{
			name: "success - free course records zero price",
			purchase: &models.Purchase{
				UserID:   1,
				CourseID: 3,
				Price:    0,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO purchases \(user_id, course_id, price\)`).
					WithArgs(1, 3, 0.0).
					WillReturnResult(sqlmock.NewResult(6, 1))
			},
			expectedError: false,
			expectedID:    6,
		},
		{
			name: "database error",
			purchase: &models.Purchase{
				UserID:   1,
				CourseID: 2,
				Price:    49.99,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO purchases`).
					WithArgs(1, 2, 49.99).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPurchaseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.purchase)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.purchase.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_ListCourseIDsByUser(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIDs   []int
	}{
		{
			name:   "success",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"course_id"}).
					AddRow(3).
					AddRow(1)
				mock.ExpectQuery(`SELECT course_id FROM purchases WHERE user_id = \? ORDER BY created_at DESC`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   []int{3, 1},
		},
		{
			name:   "no purchases",
			userID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"course_id"})
				mock.ExpectQuery(`SELECT course_id FROM purchases WHERE user_id = \? ORDER BY created_at DESC`).
					WithArgs(2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedIDs:   nil,
		},
		{
			name:   "database error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT course_id FROM purchases WHERE user_id = \? ORDER BY created_at DESC`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPurchaseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.ListCourseIDsByUser(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedIDs, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_GetByCourseIDs(t *testing.T) {
	tests := []struct {
		name          string
		courseIDs     []int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:      "success",
			courseIDs: []int{1, 2},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "price", "created_at"}).
					AddRow(1, 5, 1, 49.99, time.Now()).
					AddRow(2, 6, 2, 29.99, time.Now())
				mock.ExpectQuery(`SELECT id, user_id, course_id, price, created_at\s+FROM purchases\s+WHERE course_id IN \(\?,\?\)`).
					WithArgs(1, 2).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:          "empty input short-circuits",
			courseIDs:     nil,
			setupMock:     func(mock sqlmock.Sqlmock) {},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:      "database error",
			courseIDs: []int{1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, user_id, course_id, price, created_at\s+FROM purchases\s+WHERE course_id IN \(\?\)`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPurchaseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByCourseIDs(context.Background(), tt.courseIDs)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPurchaseRepository_RecentByInstructor(t *testing.T) {
	tests := []struct {
		name          string
		instructorID  int
		limit         int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:         "success",
			instructorID: 10,
			limit:        5,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"title", "buyer", "price", "created_at"}).
					AddRow("Go Basics", "Jane Doe", 49.99, time.Now()).
					AddRow("Go Basics", "", 49.99, time.Now())
				mock.ExpectQuery(`SELECT c.title, COALESCE\(CONCAT\(pr.first_name, ' ', pr.last_name\), ''\), p.price, p.created_at\s+FROM purchases p`).
					WithArgs(10, 5).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:         "no sales",
			instructorID: 11,
			limit:        5,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"title", "buyer", "price", "created_at"})
				mock.ExpectQuery(`SELECT c.title, COALESCE\(CONCAT\(pr.first_name, ' ', pr.last_name\), ''\), p.price, p.created_at\s+FROM purchases p`).
					WithArgs(11, 5).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name:         "database error",
			instructorID: 10,
			limit:        5,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT c.title, COALESCE\(CONCAT\(pr.first_name, ' ', pr.last_name\), ''\), p.price, p.created_at\s+FROM purchases p`).
					WithArgs(10, 5).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupPurchaseTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.RecentByInstructor(context.Background(), tt.instructorID, tt.limit)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

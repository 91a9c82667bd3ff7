package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLessonService(t *testing.T) {
	courseRepo := &mockCourseRepository{}
	lessonRepo := &mockLessonRepository{}

	svc := NewLessonService(courseRepo, lessonRepo)

	assert.NotNil(t, svc)
	assert.Equal(t, courseRepo, svc.courseRepo)
	assert.Equal(t, lessonRepo, svc.lessonRepo)
}

func TestLessonService_CreateLesson(t *testing.T) {
	tests := []struct {
		name             string
		courseRepo       *mockCourseRepository
		lessonRepo       *mockLessonRepository
		expectedError    error
		expectedPosition int
	}{
		{
			name:             "first lesson lands at position zero",
			courseRepo:       &mockCourseRepository{owns: true},
			lessonRepo:       &mockLessonRepository{hasLessons: false},
			expectedPosition: 0,
		},
		{
			name:             "new lesson goes one past the max",
			courseRepo:       &mockCourseRepository{owns: true},
			lessonRepo:       &mockLessonRepository{hasLessons: true, maxPosition: 2},
			expectedPosition: 3,
		},
		{
			name:       "gaps from deletions are not reused",
			courseRepo: &mockCourseRepository{owns: true},
			// positions {0, 2, 5} on disk
			lessonRepo:       &mockLessonRepository{hasLessons: true, maxPosition: 5},
			expectedPosition: 6,
		},
		{
			name:          "not the owner",
			courseRepo:    &mockCourseRepository{owns: false},
			lessonRepo:    &mockLessonRepository{},
			expectedError: apperrors.ErrUnauthorized,
		},
		{
			name:          "store insert failure",
			courseRepo:    &mockCourseRepository{owns: true},
			lessonRepo:    &mockLessonRepository{createErr: errors.New("database error")},
			expectedError: apperrors.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.courseRepo, tt.lessonRepo)

			result, err := svc.CreateLesson(context.Background(), 10, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				assert.Nil(t, tt.lessonRepo.createdLesson)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.expectedPosition, result.Position)
				assert.Equal(t, models.NewLessonTitle, result.Title)
				assert.False(t, result.IsFree)
			}
		})
	}
}

func TestLessonService_UpdateLesson(t *testing.T) {
	lesson := &models.Lesson{ID: 5, CourseID: 1, Title: "Old Title", Position: 2}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		lessonRepo    *mockLessonRepository
		expectedError error
	}{
		{
			name:       "success",
			courseRepo: &mockCourseRepository{owns: true},
			lessonRepo: &mockLessonRepository{lesson: lesson},
		},
		{
			name:          "lesson not found",
			courseRepo:    &mockCourseRepository{owns: true},
			lessonRepo:    &mockLessonRepository{getByIDErr: fmt.Errorf("%w: lesson 5", apperrors.ErrNotFound)},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:          "not the owner",
			courseRepo:    &mockCourseRepository{owns: false},
			lessonRepo:    &mockLessonRepository{lesson: lesson},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.courseRepo, tt.lessonRepo)

			req := &models.UpdateLessonRequest{Title: "New Title"}
			result, err := svc.UpdateLesson(context.Background(), 10, 5, req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				assert.Nil(t, tt.lessonRepo.updatedReq)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, 5, tt.lessonRepo.updatedID)
				assert.Equal(t, req, tt.lessonRepo.updatedReq)
			}
		})
	}
}

func TestLessonService_DeleteLesson(t *testing.T) {
	lesson := &models.Lesson{ID: 5, CourseID: 1}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		lessonRepo    *mockLessonRepository
		expectedError error
	}{
		{
			name:       "success",
			courseRepo: &mockCourseRepository{owns: true},
			lessonRepo: &mockLessonRepository{lesson: lesson},
		},
		{
			name:          "lesson not found",
			courseRepo:    &mockCourseRepository{owns: true},
			lessonRepo:    &mockLessonRepository{getByIDErr: fmt.Errorf("%w: lesson 5", apperrors.ErrNotFound)},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:          "not the owner",
			courseRepo:    &mockCourseRepository{owns: false},
			lessonRepo:    &mockLessonRepository{lesson: lesson},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.courseRepo, tt.lessonRepo)

			err := svc.DeleteLesson(context.Background(), 10, 5)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, tt.lessonRepo.deleteCalled)
			} else {
				assert.NoError(t, err)
				assert.True(t, tt.lessonRepo.deleteCalled)
			}
		})
	}
}

func TestLessonService_ReorderLessons(t *testing.T) {
	updates := []models.LessonPositionUpdate{
		{ID: 2, Position: 0},
		{ID: 1, Position: 1},
	}

	tests := []struct {
		name          string
		courseRepo    *mockCourseRepository
		lessonRepo    *mockLessonRepository
		expectedError error
	}{
		{
			name:       "success",
			courseRepo: &mockCourseRepository{owns: true},
			lessonRepo: &mockLessonRepository{},
		},
		{
			name:          "not the owner",
			courseRepo:    &mockCourseRepository{owns: false},
			lessonRepo:    &mockLessonRepository{},
			expectedError: apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.courseRepo, tt.lessonRepo)

			err := svc.ReorderLessons(context.Background(), 10, 1, updates)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, tt.lessonRepo.reorderUpdates)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, tt.lessonRepo.reorderCourseID)
				assert.Equal(t, updates, tt.lessonRepo.reorderUpdates)
			}
		})
	}
}

func TestLessonService_ListCourseLessons(t *testing.T) {
	tests := []struct {
		name          string
		lessonRepo    *mockLessonRepository
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			lessonRepo: &mockLessonRepository{
				lessons: []models.Lesson{
					{ID: 1, Position: 0},
					{ID: 2, Position: 1},
				},
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name:          "repository error",
			lessonRepo:    &mockLessonRepository{getByCourseErr: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(&mockCourseRepository{}, tt.lessonRepo)

			result, err := svc.ListCourseLessons(context.Background(), 1)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.expectedCount)
			}
		})
	}
}

package models

import "time"

// Progress is a per-user, per-lesson completion flag
type Progress struct {
	UserID      int       `json:"userId"`
	LessonID    int       `json:"lessonId"`
	IsCompleted bool      `json:"isCompleted"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseProgress aggregates completion for a user within one course
type CourseProgress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// UpdateProgressRequest represents a request to set lesson completion
type UpdateProgressRequest struct {
	IsCompleted bool `json:"isCompleted"`
}

package models

// Lesson represents an ordered unit of content within a course
type Lesson struct {
	ID       int     `json:"id"`
	CourseID int     `json:"courseId"`
	Title    string  `json:"title"`
	Content  *string `json:"content,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	IsFree   bool    `json:"isFree"`
	Position int     `json:"position"`
}

// NewLessonTitle is the placeholder title assigned on creation
const NewLessonTitle = "New Lesson"

// UpdateLessonRequest represents a partial lesson update.
// Pointer fields left nil are not touched; a pointer to the empty
// string clears the column.
type UpdateLessonRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  *string `json:"content,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	IsFree   bool    `json:"isFree"`
	Position *int    `json:"position,omitempty"`
}

// LessonPositionUpdate represents a single entry of a reorder request
type LessonPositionUpdate struct {
	ID       int `json:"id" validate:"required"`
	Position int `json:"position" validate:"gte=0"`
}

// ReorderLessonsRequest represents a request to rewrite lesson positions
type ReorderLessonsRequest struct {
	Updates []LessonPositionUpdate `json:"updates" validate:"required,min=1,dive"`
}

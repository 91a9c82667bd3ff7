package models

import "time"

// CourseCategories lists the categories a course can be filed under
var CourseCategories = []string{
	"Development",
	"Business",
	"Design",
	"Marketing",
	"IT & Software",
}

// DefaultCourseCategory is used when a course is created without a category
const DefaultCourseCategory = "Development"

// Course represents a purchasable or free unit of instructional content
type Course struct {
	ID           int       `json:"id"`
	InstructorID int       `json:"instructorId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsFree reports whether the course can be accessed without a purchase
func (c *Course) IsFree() bool {
	return c.Price == 0
}

// CourseListItem represents a course in catalog list responses
type CourseListItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

// CourseSuggestion represents a course in search suggestion responses
type CourseSuggestion struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price" validate:"gte=0"`
	Thumbnail   string  `json:"thumbnail"`
	IsPublished bool    `json:"isPublished"`
}

// UpdateCoursePriceRequest represents a request to change a course price
type UpdateCoursePriceRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// PublishCourseRequest represents a request to change course visibility
type PublishCourseRequest struct {
	IsPublished bool `json:"isPublished"`
}

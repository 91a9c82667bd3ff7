package models

import "time"

// Review is a user's rating and optional comment for a course
type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CourseID  int       `json:"courseId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewResponse is a review joined with its author's display profile.
// Author is nil when no profile row exists; such reviews render as anonymous.
type ReviewResponse struct {
	Review
	Author *Profile `json:"author,omitempty"`
}

// CourseRating aggregates review ratings for a course
type CourseRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// CreateReviewRequest represents a request to submit a review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// UpdateReviewRequest represents a request to edit an existing review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

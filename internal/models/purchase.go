package models

import "time"

// Purchase records a user's access grant to a course, free or paid
type Purchase struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CourseID  int       `json:"courseId"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// EnrollmentResult reports the outcome of an enrollment attempt
type EnrollmentResult struct {
	Success         bool `json:"success"`
	AlreadyEnrolled bool `json:"alreadyEnrolled"`
}

// RecentSale represents a purchase of an instructor's course with buyer info
type RecentSale struct {
	CourseTitle string    `json:"courseTitle"`
	BuyerName   string    `json:"buyerName"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

package models

// DashboardMetrics aggregates sales and rating data for an instructor
type DashboardMetrics struct {
	TotalRevenue   float64 `json:"totalRevenue"`
	ActiveStudents int     `json:"activeStudents"`
	TotalCourses   int     `json:"totalCourses"`
	AvgRating      float64 `json:"avgRating"`
}

// UploadSignature holds the parameters a client needs for a signed direct upload
type UploadSignature struct {
	Timestamp string `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
}

package services

import (
	"context"
	"fmt"

	"github.com/edustream/backend/internal/models"
)

const defaultRecentSalesLimit = 5

type analyticsService struct {
	courseRepo   CourseRepository
	purchaseRepo PurchaseRepository
	reviewRepo   ReviewRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	courseRepo CourseRepository,
	purchaseRepo PurchaseRepository,
	reviewRepo ReviewRepository,
) *analyticsService {
	return &analyticsService{
		courseRepo:   courseRepo,
		purchaseRepo: purchaseRepo,
		reviewRepo:   reviewRepo,
	}
}

// GetDashboardMetrics aggregates an instructor's sales and rating data.
// Revenue sums the price recorded at purchase time, not the current
// course price. Active students counts distinct buyers across courses.
func (s *analyticsService) GetDashboardMetrics(ctx context.Context, instructorID int) (*models.DashboardMetrics, error) {
	courseIDs, err := s.courseRepo.ListIDsByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}

	metrics := &models.DashboardMetrics{
		TotalCourses: len(courseIDs),
	}
	if len(courseIDs) == 0 {
		return metrics, nil
	}

	purchases, err := s.purchaseRepo.GetByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}

	buyers := make(map[int]struct{})
	for _, purchase := range purchases {
		metrics.TotalRevenue += purchase.Price
		buyers[purchase.UserID] = struct{}{}
	}
	metrics.ActiveStudents = len(buyers)

	average, _, err := s.reviewRepo.RatingByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating across courses: %w", err)
	}
	metrics.AvgRating = roundToOneDecimal(average)

	return metrics, nil
}

// GetRecentSales retrieves the latest purchases of an instructor's courses
func (s *analyticsService) GetRecentSales(ctx context.Context, instructorID, limit int) ([]models.RecentSale, error) {
	if limit < 1 {
		limit = defaultRecentSalesLimit
	}

	return s.purchaseRepo.RecentByInstructor(ctx, instructorID, limit)
}

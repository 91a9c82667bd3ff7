package services

import (
	"context"

	"github.com/edustream/backend/internal/models"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course      *models.Course
	courses     []models.CourseListItem
	suggestions []models.CourseSuggestion
	courseIDs   []int
	owns        bool

	getByIDErr        error
	listPublishedErr  error
	suggestionsErr    error
	listIDsErr        error
	createErr         error
	updatePublishErr  error
	updatePriceErr    error
	deleteErr         error
	checkOwnershipErr error

	createdCourse    *models.Course
	publishedState   *bool
	updatedPrice     *float64
	deleteCalled     bool
	suggestionsQuery string
	suggestionsLimit int
	listPage         int
	listCount        int
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) ListPublished(ctx context.Context, category, search string, page, count int) ([]models.CourseListItem, error) {
	m.listPage = page
	m.listCount = count
	if m.listPublishedErr != nil {
		return nil, m.listPublishedErr
	}
	return m.courses, nil
}

func (m *mockCourseRepository) Suggestions(ctx context.Context, query string, limit int) ([]models.CourseSuggestion, error) {
	m.suggestionsQuery = query
	m.suggestionsLimit = limit
	if m.suggestionsErr != nil {
		return nil, m.suggestionsErr
	}
	return m.suggestions, nil
}

func (m *mockCourseRepository) ListIDsByInstructor(ctx context.Context, instructorID int) ([]int, error) {
	if m.listIDsErr != nil {
		return nil, m.listIDsErr
	}
	return m.courseIDs, nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = 1
	m.createdCourse = course
	return nil
}

func (m *mockCourseRepository) UpdatePublish(ctx context.Context, id int, isPublished bool) error {
	if m.updatePublishErr != nil {
		return m.updatePublishErr
	}
	m.publishedState = &isPublished
	return nil
}

func (m *mockCourseRepository) UpdatePrice(ctx context.Context, id int, price float64) error {
	if m.updatePriceErr != nil {
		return m.updatePriceErr
	}
	m.updatedPrice = &price
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalled = true
	return nil
}

func (m *mockCourseRepository) CheckOwnership(ctx context.Context, id, instructorID int) (bool, error) {
	if m.checkOwnershipErr != nil {
		return false, m.checkOwnershipErr
	}
	return m.owns, nil
}

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson      *models.Lesson
	lessons     []models.Lesson
	maxPosition int
	hasLessons  bool
	count       int

	getByIDErr         error
	getByCourseErr     error
	maxPositionErr     error
	countErr           error
	createErr          error
	updateErr          error
	updatePositionsErr error
	deleteErr          error

	createdLesson   *models.Lesson
	updatedID       int
	updatedReq      *models.UpdateLessonRequest
	reorderCourseID int
	reorderUpdates  []models.LessonPositionUpdate
	deleteCalled    bool
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	if m.getByCourseErr != nil {
		return nil, m.getByCourseErr
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) MaxPosition(ctx context.Context, courseID int) (int, bool, error) {
	if m.maxPositionErr != nil {
		return 0, false, m.maxPositionErr
	}
	return m.maxPosition, m.hasLessons, nil
}

func (m *mockLessonRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	lesson.ID = 1
	m.createdLesson = lesson
	return nil
}

func (m *mockLessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedReq = req
	return nil
}

func (m *mockLessonRepository) UpdatePositions(ctx context.Context, courseID int, updates []models.LessonPositionUpdate) error {
	if m.updatePositionsErr != nil {
		return m.updatePositionsErr
	}
	m.reorderCourseID = courseID
	m.reorderUpdates = updates
	return nil
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalled = true
	return nil
}

// mockPurchaseRepository is a mock implementation of PurchaseRepository
type mockPurchaseRepository struct {
	exists    bool
	courseIDs []int
	purchases []models.Purchase
	sales     []models.RecentSale

	existsErr  error
	createErr  error
	listIDsErr error
	getByIDErr error
	recentErr  error

	createdPurchase *models.Purchase
}

func (m *mockPurchaseRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	if m.createErr != nil {
		return m.createErr
	}
	purchase.ID = 1
	m.createdPurchase = purchase
	return nil
}

func (m *mockPurchaseRepository) ListCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	if m.listIDsErr != nil {
		return nil, m.listIDsErr
	}
	return m.courseIDs, nil
}

func (m *mockPurchaseRepository) GetByCourseIDs(ctx context.Context, courseIDs []int) ([]models.Purchase, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.purchases, nil
}

func (m *mockPurchaseRepository) RecentByInstructor(ctx context.Context, instructorID, limit int) ([]models.RecentSale, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.sales, nil
}

// mockProgressRepository is a mock implementation of ProgressRepository
type mockProgressRepository struct {
	completedCount int

	upsertErr error
	countErr  error

	upsertUserID    int
	upsertLessonID  int
	upsertCompleted bool
	upsertCalled    bool
}

func (m *mockProgressRepository) Upsert(ctx context.Context, userID, lessonID int, isCompleted bool) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertCalled = true
	m.upsertUserID = userID
	m.upsertLessonID = lessonID
	m.upsertCompleted = isCompleted
	return nil
}

func (m *mockProgressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.completedCount, nil
}

// mockReviewRepository is a mock implementation of ReviewRepository
type mockReviewRepository struct {
	review  *models.Review
	exists  bool
	reviews []models.ReviewResponse
	average float64
	count   int

	getByIDErr error
	existsErr  error
	createErr  error
	updateErr  error
	deleteErr  error
	listErr    error
	ratingErr  error

	createdReview  *models.Review
	updatedRating  int
	updatedComment *string
	deleteCalled   bool
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int) (*models.Review, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	return m.review, nil
}

func (m *mockReviewRepository) ExistsByUserAndCourse(ctx context.Context, userID, courseID int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	review.ID = 1
	m.createdReview = review
	return nil
}

func (m *mockReviewRepository) Update(ctx context.Context, id, rating int, comment *string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedRating = rating
	m.updatedComment = comment
	return nil
}

func (m *mockReviewRepository) Delete(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleteCalled = true
	return nil
}

func (m *mockReviewRepository) ListByCourse(ctx context.Context, courseID int) ([]models.ReviewResponse, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.reviews, nil
}

func (m *mockReviewRepository) RatingByCourse(ctx context.Context, courseID int) (float64, int, error) {
	if m.ratingErr != nil {
		return 0, 0, m.ratingErr
	}
	return m.average, m.count, nil
}

func (m *mockReviewRepository) RatingByCourses(ctx context.Context, courseIDs []int) (float64, int, error) {
	if m.ratingErr != nil {
		return 0, 0, m.ratingErr
	}
	return m.average, m.count, nil
}

// mockProfileRepository is a mock implementation of ProfileRepository
type mockProfileRepository struct {
	profile *models.Profile
	err     error
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id int) (*models.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

// mockNotifier is a mock implementation of Notifier
type mockNotifier struct {
	published []string
	err       error
}

func (m *mockNotifier) PublishInsert(ctx context.Context, table string) error {
	m.published = append(m.published, table)
	return m.err
}

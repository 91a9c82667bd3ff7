package cart

import (
	"context"
	"fmt"

	"github.com/edustream/backend/internal/models"
)

// CourseGetter looks up course data for items being added
type CourseGetter interface {
	// GetByID retrieves a course by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns the course and an error if any.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

type manager struct {
	store   Store
	courses CourseGetter
}

// NewManager creates a cart manager on top of a store
func NewManager(store Store, courses CourseGetter) *manager {
	return &manager{
		store:   store,
		courses: courses,
	}
}

// GetCart retrieves the cart for an owner key
func (m *manager) GetCart(ctx context.Context, key string) (*Cart, error) {
	return m.store.Get(ctx, key)
}

// AddCourse puts a course into the cart. Adding a course already in the
// cart leaves it unchanged.
func (m *manager) AddCourse(ctx context.Context, key string, courseID int) (*Cart, error) {
	course, err := m.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	c, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	added := c.Add(Item{
		CourseID:     course.ID,
		Title:        course.Title,
		Price:        course.Price,
		ThumbnailURL: course.ThumbnailURL,
	})
	if !added {
		return c, nil
	}

	if err := m.store.Save(ctx, key, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return c, nil
}

// RemoveCourse takes a course out of the cart
func (m *manager) RemoveCourse(ctx context.Context, key string, courseID int) (*Cart, error) {
	c, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !c.Remove(courseID) {
		return c, nil
	}

	if err := m.store.Save(ctx, key, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return c, nil
}

// ClearCart discards all items for an owner key
func (m *manager) ClearCart(ctx context.Context, key string) error {
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

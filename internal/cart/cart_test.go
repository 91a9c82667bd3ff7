package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/edustream/backend/internal/apperrors"
	"github.com/edustream/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Add(t *testing.T) {
	c := &Cart{}

	assert.True(t, c.Add(Item{CourseID: 1, Title: "Go Basics", Price: 49.99}))
	assert.True(t, c.Add(Item{CourseID: 2, Title: "Design 101", Price: 29.99}))

	// adding the same course again is a no-op
	assert.False(t, c.Add(Item{CourseID: 1, Title: "Go Basics", Price: 49.99}))

	assert.Equal(t, 2, c.TotalItems())
	assert.InDelta(t, 79.98, c.TotalPrice(), 0.0001)
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))
	assert.False(t, c.Contains(3))
}

func TestCart_Remove(t *testing.T) {
	c := &Cart{}
	c.Add(Item{CourseID: 1, Price: 49.99})
	c.Add(Item{CourseID: 2, Price: 29.99})

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))
	assert.False(t, c.Contains(1))
	assert.Equal(t, 1, c.TotalItems())
	assert.InDelta(t, 29.99, c.TotalPrice(), 0.0001)
}

func TestCart_Clear(t *testing.T) {
	c := &Cart{}
	c.Add(Item{CourseID: 1, Price: 49.99})

	c.Clear()

	assert.Equal(t, 0, c.TotalItems())
	assert.Zero(t, c.TotalPrice())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("missing key returns empty cart", func(t *testing.T) {
		c, err := store.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, 0, c.TotalItems())
	})

	t.Run("save and get round-trip", func(t *testing.T) {
		c := &Cart{}
		c.Add(Item{CourseID: 1, Title: "Go Basics", Price: 49.99})
		require.NoError(t, store.Save(ctx, "user:1", c))

		got, err := store.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, c.Items, got.Items)
	})

	t.Run("returned cart is a copy", func(t *testing.T) {
		got, err := store.Get(ctx, "user:1")
		require.NoError(t, err)
		got.Clear()

		again, err := store.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, 1, again.TotalItems())
	})

	t.Run("delete removes the cart", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "user:1"))

		got, err := store.Get(ctx, "user:1")
		require.NoError(t, err)
		assert.Equal(t, 0, got.TotalItems())
	})
}

// stubCourseGetter is a stub implementation of CourseGetter
type stubCourseGetter struct {
	course *models.Course
	err    error
}

func (s *stubCourseGetter) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.course, nil
}

func TestManager_AddCourse(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, Title: "Go Basics", Price: 49.99}

	t.Run("adds and persists", func(t *testing.T) {
		store := NewMemoryStore()
		m := NewManager(store, &stubCourseGetter{course: course})

		c, err := m.AddCourse(ctx, "user:5", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, c.TotalItems())
		assert.Equal(t, "Go Basics", c.Items[0].Title)

		stored, err := store.Get(ctx, "user:5")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.TotalItems())
	})

	t.Run("duplicate add leaves cart unchanged", func(t *testing.T) {
		store := NewMemoryStore()
		m := NewManager(store, &stubCourseGetter{course: course})

		_, err := m.AddCourse(ctx, "user:5", 1)
		require.NoError(t, err)
		c, err := m.AddCourse(ctx, "user:5", 1)
		require.NoError(t, err)
		assert.Equal(t, 1, c.TotalItems())
	})

	t.Run("unknown course propagates not found", func(t *testing.T) {
		m := NewManager(NewMemoryStore(), &stubCourseGetter{err: fmt.Errorf("%w: course 9", apperrors.ErrNotFound)})

		c, err := m.AddCourse(ctx, "user:5", 9)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, c)
	})
}

func TestManager_RemoveCourse(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, Title: "Go Basics", Price: 49.99}
	store := NewMemoryStore()
	m := NewManager(store, &stubCourseGetter{course: course})

	_, err := m.AddCourse(ctx, "user:5", 1)
	require.NoError(t, err)

	c, err := m.RemoveCourse(ctx, "user:5", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, c.TotalItems())

	// removing again is harmless
	c, err = m.RemoveCourse(ctx, "user:5", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, c.TotalItems())
}

func TestManager_ClearCart(t *testing.T) {
	ctx := context.Background()
	course := &models.Course{ID: 1, Title: "Go Basics", Price: 49.99}
	store := NewMemoryStore()
	m := NewManager(store, &stubCourseGetter{course: course})

	_, err := m.AddCourse(ctx, "user:5", 1)
	require.NoError(t, err)

	require.NoError(t, m.ClearCart(ctx, "user:5"))

	c, err := m.GetCart(ctx, "user:5")
	require.NoError(t, err)
	assert.Equal(t, 0, c.TotalItems())
}

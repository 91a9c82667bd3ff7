// Package cart implements a per-user shopping cart with pluggable storage
package cart

// Item is a course placed in a cart. Price is captured when the item is
// added; checkout re-reads the live course price.
type Item struct {
	CourseID     int     `json:"courseId"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}

// Cart holds the items a user intends to purchase
type Cart struct {
	Items []Item `json:"items"`
}

// Add appends an item unless the course is already in the cart.
// It reports whether the item was added.
func (c *Cart) Add(item Item) bool {
	if c.Contains(item.CourseID) {
		return false
	}
	c.Items = append(c.Items, item)
	return true
}

// Remove deletes the item for a course. It reports whether an item was removed.
func (c *Cart) Remove(courseID int) bool {
	for i, item := range c.Items {
		if item.CourseID == courseID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all items
func (c *Cart) Clear() {
	c.Items = nil
}

// Contains reports whether a course is in the cart
func (c *Cart) Contains(courseID int) bool {
	for _, item := range c.Items {
		if item.CourseID == courseID {
			return true
		}
	}
	return false
}

// TotalItems returns the number of items in the cart
func (c *Cart) TotalItems() int {
	return len(c.Items)
}

// TotalPrice returns the sum of item prices
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

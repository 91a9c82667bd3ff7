package cart

import "context"

// Store persists carts by owner key
type Store interface {
	// Get retrieves the cart for a key. A key with no stored cart
	// returns an empty cart, not an error.
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	//
	// Returns the cart and an error if any.
	Get(ctx context.Context, key string) (*Cart, error)
	// Save persists the cart for a key
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	// "cart" is the cart to persist.
	//
	// Returns an error if any.
	Save(ctx context.Context, key string, cart *Cart) error
	// Delete removes the stored cart for a key
	//
	// "ctx" is the context for the request.
	// "key" identifies the cart owner.
	//
	// Returns an error if any.
	Delete(ctx context.Context, key string) error
}

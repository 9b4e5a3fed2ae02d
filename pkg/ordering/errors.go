package ordering

import "errors"

var (
	ErrEmptyOrder       = errors.New("cannot place an order with no items")
	ErrInvalidQuantity  = errors.New("item quantity must be positive")
	ErrQuantityLimit    = errors.New("a single item is limited to 5 per order")
	ErrOrderNotFound    = errors.New("order not found")
	ErrItemNotFound     = errors.New("catalog item not found")
	ErrCancelNotAllowed = errors.New("only pending orders can be canceled")
	ErrInvalidStatus    = errors.New("unknown order status")
	ErrBadTransition    = errors.New("order status transition not allowed")

	// ErrNumbersExhausted: every drawn 4-digit number collided with a live
	// order. Practically unreachable unless the collection holds thousands of
	// orders; kept explicit rather than looping forever.
	ErrNumbersExhausted = errors.New("could not draw an unused order number")
)

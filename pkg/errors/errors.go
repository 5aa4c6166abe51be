package errors

import "fmt"

// ErrNotFound is returned when a remote record does not exist
type ErrNotFound struct {
	Collection string
	ID         string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s/%s not found", e.Collection, e.ID)
}

// ErrInvalidStateTransition is returned when an order status change is not allowed
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}

// ErrInvalidCoupon is returned when a coupon code does not match any known coupon
type ErrInvalidCoupon struct {
	Code string
}

func (e *ErrInvalidCoupon) Error() string {
	return fmt.Sprintf("invalid coupon code: %s", e.Code)
}

// ErrAccountBlocked is returned when the signed-in account has been blocked by an administrator
type ErrAccountBlocked struct {
	UserID string
}

func (e *ErrAccountBlocked) Error() string {
	return fmt.Sprintf("account %s is blocked", e.UserID)
}

// ErrAccountDeleted is returned when the signed-in account no longer exists in the users collection
type ErrAccountDeleted struct {
	UserID string
}

func (e *ErrAccountDeleted) Error() string {
	return fmt.Sprintf("account %s has been deleted", e.UserID)
}

// ErrEmptyCart is returned when checkout is attempted with no cart lines
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

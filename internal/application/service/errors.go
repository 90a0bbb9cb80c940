package service

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a billing session ID is unknown or
// the session was already torn down.
var ErrSessionNotFound = errors.New("billing session not found")

// ErrEmptyCart is returned when checkout is attempted on a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// OutOfStockError is returned by AddToCart when the requested quantity,
// together with what is already in the cart, exceeds current availability.
// CanAdd reports exactly how many additional units the caller could still add.
type OutOfStockError struct {
	ItemID   string
	ItemName string
	InCart   int
	CanAdd   int
}

func (e *OutOfStockError) Error() string {
	if e.CanAdd > 0 {
		return fmt.Sprintf("only %d more of '%s' available (%d already in cart)", e.CanAdd, e.ItemName, e.InCart)
	}
	return fmt.Sprintf("no more of '%s' available (%d already in cart)", e.ItemName, e.InCart)
}

// InsufficientStockError is returned by the pre-settlement validation
// checkpoint when another actor reduced stock below a line's quantity
// after it was added to the cart.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': need %d, available %d", e.ItemName, e.Requested, e.Available)
}

// ItemRemovedError is returned when a cart line references an item that no
// longer exists in inventory.
type ItemRemovedError struct {
	ItemID   string
	ItemName string
}

func (e *ItemRemovedError) Error() string {
	return fmt.Sprintf("item '%s' no longer exists in inventory", e.ItemName)
}

// PersistenceError wraps a failed store write during settlement. It is
// surfaced distinctly from stock errors so the caller can decide whether
// a retry makes sense.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

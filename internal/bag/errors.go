package bag

import (
	"errors"
	"fmt"
)

var (
	// ErrBagFull is matched by CapacityError when an item does not fit.
	ErrBagFull = errors.New("bag is full")
	// ErrInvalidCapacity is returned when a bag is configured with fewer than one slot.
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	// ErrOverCapacity is returned when the initial items do not fit the capacity.
	ErrOverCapacity = errors.New("initial items exceed bag capacity")
)

// CapacityError reports an item rejected because the bag was already full.
type CapacityError struct {
	Item     *Item
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot add %q: bag is full (%d items)", e.Item.Name, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrBagFull
}

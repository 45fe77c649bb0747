package db

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSlot is returned when an insert or update would place two
	// assignments on the same (date, slot type)
	ErrDuplicateSlot = errors.New("an assignment already exists for this date and slot")

	// ErrStaleSwap is returned by ExchangeOwners when either shift no longer
	// belongs to the party recorded on the swap request
	ErrStaleSwap = errors.New("swap shifts were reassigned since the request was created")

	// ErrSwapNotPending is returned when a resolve or exchange reaches a swap
	// request that another writer already moved to a terminal status
	ErrSwapNotPending = errors.New("swap request is no longer pending")
)

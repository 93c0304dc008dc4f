package roomdata

import (
	"errors"
	"fmt"
)

// ErrRoomNotFound is returned by loaders when no resource exists for the
// requested room id.
var ErrRoomNotFound = errors.New("room not found")

// RoomDataError reports a structurally invalid room resource: mismatched
// layer dimensions, missing height data, malformed warp records. A room that
// fails to load this way must never be partially observable.
type RoomDataError struct {
	Room   int
	Reason string
	Err    error
}

func (e *RoomDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("room %d: %s: %v", e.Room, e.Reason, e.Err)
	}
	return fmt.Sprintf("room %d: %s", e.Room, e.Reason)
}

func (e *RoomDataError) Unwrap() error { return e.Err }

func dataErr(room int, reason string, err error) *RoomDataError {
	return &RoomDataError{Room: room, Reason: reason, Err: err}
}

// BoundsError reports a grid query outside the room. Queries never clamp at
// this level so that corrupt room data surfaces immediately.
type BoundsError struct {
	X, Y  int
	Layer int
	W, H  int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grid query (%d,%d) layer %d out of bounds %dx%d", e.X, e.Y, e.Layer, e.W, e.H)
}

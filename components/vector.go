package components

// Vector represents a 2D vector in tile coordinates.
type Vector struct {
	X, Y float64
}

// Vec3 is a room-local position: (x, y) in tiles plus a height in height
// units. Height is an independent coordinate, never derived from (x, y).
type Vec3 struct {
	X, Y, H float64
}

// Direction is a cardinal facing in room space.
type Direction uint8

const (
	DirDown Direction = iota
	DirUp
	DirLeft
	DirRight
)

// Delta returns the unit step for the direction in tile coordinates.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// CW returns the direction rotated a quarter turn clockwise.
func (d Direction) CW() Direction {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	default:
		return DirUp
	}
}

// CCW returns the direction rotated a quarter turn counter-clockwise.
func (d Direction) CCW() Direction {
	switch d {
	case DirUp:
		return DirLeft
	case DirLeft:
		return DirDown
	case DirDown:
		return DirRight
	default:
		return DirUp
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

package components

import "testing"

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy float64
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Fatalf("%v.Delta() = (%v, %v), want (%v, %v)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestDirectionRotationsRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if d.CW().CCW() != d {
			t.Fatalf("%v CW then CCW = %v", d, d.CW().CCW())
		}
		if d.CW().CW().CW().CW() != d {
			t.Fatalf("four CW turns from %v = %v", d, d.CW().CW().CW().CW())
		}
		if d.CW() == d {
			t.Fatalf("%v.CW() did not rotate", d)
		}
	}
}

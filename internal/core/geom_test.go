package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"last cell", 29, 24, true},
		{"right edge is exclusive", 30, 15, false},
		{"bottom edge is exclusive", 15, 25, false},
		{"left of", 9, 15, false},
		{"above", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(5, 10, 20, 15)
	if r.Right() != 25 || r.Bottom() != 25 {
		t.Fatalf("edges = (%d, %d), expected (25, 25)", r.Right(), r.Bottom())
	}
	if in := r.Inset(1); in != NewRect(6, 11, 18, 13) {
		t.Errorf("Inset(1) = %+v, expected {6 11 18 13}", in)
	}
	if small := NewRect(0, 0, 1, 1).Inset(1); small.W != 0 || small.H != 0 {
		t.Errorf("Inset should not go negative, got %+v", small)
	}
}

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name   string
		outer  Rect
		w, h   int
		expect Rect
	}{
		{"even fit", NewRect(0, 0, 80, 24), 20, 4, NewRect(30, 10, 20, 4)},
		{"odd leftover", NewRect(0, 0, 11, 5), 4, 2, NewRect(3, 1, 4, 2)},
		{"offset parent", NewRect(0, 2, 80, 20), 40, 10, NewRect(20, 7, 40, 10)},
		{"too large", NewRect(0, 0, 10, 4), 14, 6, NewRect(-2, -1, 14, 6)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outer.Center(tc.w, tc.h); got != tc.expect {
				t.Errorf("Center(%d, %d) = %+v, expected %+v", tc.w, tc.h, got, tc.expect)
			}
		})
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(12, 7)
	if b := s.Bounds(); b != NewRect(0, 0, 12, 7) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

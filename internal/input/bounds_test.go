package input

import "testing"

// TestClampToScreen verifies points are kept inside the screen.
func TestClampToScreen(t *testing.T) {
	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{name: "Inside", x: 10, y: 20, wantX: 10, wantY: 20},
		{name: "Negative", x: -5, y: -1, wantX: 0, wantY: 0},
		{name: "Overflow", x: 5000, y: 900, wantX: 1919, wantY: 899},
		{name: "Edge", x: 1919, y: 899, wantX: 1919, wantY: 899},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := clampToScreen(tt.x, tt.y, 1920, 900)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("expected (%d,%d), got (%d,%d)", tt.wantX, tt.wantY, x, y)
			}
		})
	}
}

// TestClampToScreen_UnknownSize verifies an unknown screen leaves points alone.
func TestClampToScreen_UnknownSize(t *testing.T) {
	x, y := clampToScreen(-3, 7, 0, 0)
	if x != -3 || y != 7 {
		t.Fatalf("unexpected clamp: (%d,%d)", x, y)
	}
}

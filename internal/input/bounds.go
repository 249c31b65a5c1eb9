// Package input injects keyboard and mouse input into one target window.
package input

// clampToScreen keeps (x,y) inside a width×height screen.
func clampToScreen(x, y, width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return x, y
	}
	if x < 0 {
		x = 0
	}
	if x > width-1 {
		x = width - 1
	}
	if y < 0 {
		y = 0
	}
	if y > height-1 {
		y = height - 1
	}
	return x, y
}

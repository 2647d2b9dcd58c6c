package render

// CellSize is not available on Windows consoles.
func CellSize(fd int) (w, h int, ok bool) {
	return 0, 0, false
}

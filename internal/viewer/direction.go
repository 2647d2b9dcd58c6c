package viewer

import "fmt"

// Direction selects the neighbour visited by Navigate.
type Direction string

const (
	Previous Direction = "previous"
	Next     Direction = "next"
)

// ParseDirection accepts "previous"/"prev" and "next".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "previous", "prev":
		return Previous, nil
	case "next":
		return Next, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// step returns -1 or +1, or an error for anything else.
func (d Direction) step() (int, error) {
	switch d {
	case Previous:
		return -1, nil
	case Next:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: navigate %q", ErrInvalidDirection, string(d))
}

// ZoomDirection selects whether Zoom magnifies or shrinks.
type ZoomDirection string

const (
	ZoomIn  ZoomDirection = "in"
	ZoomOut ZoomDirection = "out"
)

// ParseZoomDirection accepts "in" and "out".
func ParseZoomDirection(s string) (ZoomDirection, error) {
	switch s {
	case "in":
		return ZoomIn, nil
	case "out":
		return ZoomOut, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d ZoomDirection) step() (int, error) {
	switch d {
	case ZoomIn:
		return 1, nil
	case ZoomOut:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: zoom %q", ErrInvalidDirection, string(d))
}

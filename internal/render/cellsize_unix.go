//go:build !windows

package render

import "golang.org/x/sys/unix"

// CellSize reports the pixel size of one terminal cell on fd. Terminals
// that leave the pixel fields of the window size at zero report !ok.
func CellSize(fd int) (w, h int, ok bool) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return 0, 0, false
	}
	return int(ws.Xpixel) / int(ws.Col), int(ws.Ypixel) / int(ws.Row), true
}

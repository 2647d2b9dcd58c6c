// Package render turns media items into terminal output: kitty graphics,
// sixel, truecolor half-blocks or a plain text card.
package render

import (
	"fmt"
	"os"
	"strings"
)

// Protocol is a terminal image protocol.
type Protocol int

const (
	ProtocolNone Protocol = iota
	ProtocolBlocks
	ProtocolSixel
	ProtocolKitty
)

func (p Protocol) String() string {
	switch p {
	case ProtocolBlocks:
		return "blocks"
	case ProtocolSixel:
		return "sixel"
	case ProtocolKitty:
		return "kitty"
	default:
		return "none"
	}
}

// Detect guesses the protocol from TERM and TERM_PROGRAM.
func Detect(getenv func(string) string) Protocol {
	if getenv == nil {
		getenv = os.Getenv
	}
	term := getenv("TERM")
	termProgram := getenv("TERM_PROGRAM")

	switch {
	case strings.Contains(term, "kitty"), termProgram == "kitty":
		return ProtocolKitty
	case termProgram == "ghostty", termProgram == "WezTerm":
		return ProtocolKitty
	}
	switch termProgram {
	case "iTerm.app", "foot", "mlterm", "contour":
		return ProtocolSixel
	}
	if strings.Contains(term, "xterm") || strings.Contains(term, "256color") || getenv("COLORTERM") == "truecolor" {
		return ProtocolBlocks
	}
	return ProtocolNone
}

// ParseProtocol maps a configuration value to a protocol. "auto" runs Detect.
func ParseProtocol(s string, getenv func(string) string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return Detect(getenv), nil
	case "kitty":
		return ProtocolKitty, nil
	case "sixel":
		return ProtocolSixel, nil
	case "blocks":
		return ProtocolBlocks, nil
	case "none":
		return ProtocolNone, nil
	}
	return ProtocolNone, fmt.Errorf("unknown graphics protocol %q", s)
}

// ForTUI returns the protocol to use inside the cell grid. Sixel images
// cannot be placed in a bubbletea view, so they fall back to blocks.
func (p Protocol) ForTUI() Protocol {
	if p == ProtocolSixel {
		return ProtocolBlocks
	}
	return p
}

// Package media discovers and classifies the files shown by the lightbox.
package media

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupported is returned when an item cannot be decoded for display.
var ErrUnsupported = errors.New("unsupported media")

// FileType is the coarse classification the viewer acts on.
type FileType string

const (
	TypeImage FileType = "image"
	TypeOther FileType = "other"
)

// Item is a single entry of a collection. Items are values and are never
// mutated after a scan; a rescan produces a new slice.
type Item struct {
	FileType  FileType  `json:"file_type"`
	Source    string    `json:"source"`               // Absolute path of the file
	Name      string    `json:"name"`                 // Base name for display
	MediaType string    `json:"media_type,omitempty"` // MIME type, e.g. "image/png"
	Size      int64     `json:"size"`
	ModTime   time.Time `json:"mod_time"`
}

// NewItem builds an item for path with an explicit type.
func NewItem(path string, fileType FileType) Item {
	return Item{
		FileType: fileType,
		Source:   path,
		Name:     filepath.Base(path),
	}
}

// IsImage reports whether the viewer may zoom and rotate the item.
func (i Item) IsImage() bool {
	return i.FileType == TypeImage
}

// Ext returns the lower-case extension without the dot.
func (i Item) Ext() string {
	ext := filepath.Ext(i.Source)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}

package media

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// ScanOptions controls which files a scan collects.
type ScanOptions struct {
	Recursive       bool
	IncludeHidden   bool
	ImageExtensions []string // lower case, without dots
}

// DefaultScanOptions matches the built-in configuration.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		ImageExtensions: []string{"png", "jpg", "jpeg", "gif", "bmp", "webp", "tif", "tiff"},
	}
}

func (o ScanOptions) isImageExt(ext string) bool {
	return slices.Contains(o.ImageExtensions, ext)
}

// Scan builds a collection from files and directories. Directory entries are
// sorted by name; explicit file arguments keep their command-line order and
// come first for each argument. Duplicates are dropped.
func Scan(ctx context.Context, paths []string, opts ScanOptions) ([]Item, error) {
	defer tuilog.Log.Timed("media scan", "paths", len(paths))()

	var items []Item
	seen := make(map[string]bool)
	add := func(path string, info fs.FileInfo) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		items = append(items, classify(abs, info, opts))
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p, info)
			continue
		}
		if err := scanDir(ctx, p, opts, add); err != nil {
			return nil, err
		}
	}

	tuilog.Log.Info("scan complete", "items", len(items))
	return items, nil
}

func scanDir(ctx context.Context, root string, opts ScanOptions, add func(string, fs.FileInfo)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			tuilog.Log.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path != root && !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		add(path, info)
		return nil
	})
}

// Classify stats path and returns its item.
func Classify(path string, opts ScanOptions) (Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Item{}, err
	}
	if info.IsDir() {
		return Item{}, fmt.Errorf("%s is a directory: %w", path, ErrUnsupported)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return classify(abs, info, opts), nil
}

// classify decides the file type by extension first and by sniffing the
// first 512 bytes when the extension says nothing.
func classify(path string, info fs.FileInfo, opts ScanOptions) Item {
	item := NewItem(path, TypeOther)
	item.Size = info.Size()
	item.ModTime = info.ModTime()

	mediaType := sniff(path)
	item.MediaType = mediaType
	switch {
	case opts.isImageExt(item.Ext()):
		item.FileType = TypeImage
	case item.Ext() == "" && strings.HasPrefix(mediaType, "image/"):
		item.FileType = TypeImage
	}
	return item
}

func sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	if n == 0 {
		return ""
	}
	mt := http.DetectContentType(buf[:n])
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return mt
}

// Dirs returns the directories a watcher should observe for paths: each
// directory argument and the parent of each file argument.
func Dirs(paths []string) []string {
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if !slices.Contains(dirs, abs) {
			dirs = append(dirs, abs)
		}
	}
	return dirs
}

// Package picker resolves user-supplied paths into an ordered list of
// image refs and supplies per-ref byte streams.
package picker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts are the file extensions treated as images when expanding a
// directory. Explicitly named files bypass this filter.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Collect expands args (files and directories) into an ordered ref list.
// Directories contribute their image files in name order, one level deep.
// The result is capped at limit; exceeding it is an error, not a silent
// truncation, so the user can narrow the selection deliberately.
func Collect(args []string, limit int) ([]string, error) {
	var refs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			refs = append(refs, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		var names []string
		for _, entry := range entries {
			if entry.IsDir() || !IsImage(entry.Name()) {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			refs = append(refs, filepath.Join(arg, name))
		}
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no images found")
	}
	if len(refs) > limit {
		return nil, fmt.Errorf("selected %d images, limit is %d", len(refs), limit)
	}
	return refs, nil
}

// Open returns the bytes of one image ref.
func Open(ref string) ([]byte, error) {
	return os.ReadFile(ref)
}

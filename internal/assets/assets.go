package assets

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFont is the monospace TrueType font used when no font file is configured.
var DefaultFont = gomono.TTF

// FontBytes returns the contents of the font file at path, or DefaultFont when path is empty.
func FontBytes(path string) ([]byte, error) {
	if path == "" {
		return DefaultFont, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}

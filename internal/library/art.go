package library

import (
	"image"

	"github.com/disintegration/imaging"
)

// ArtLoader loads per-game artwork from the ROM tree.
type ArtLoader struct {
	Root string
}

// LoadImage decodes the artwork for a game, honoring EXIF orientation.
// A missing or corrupt file returns an error the caller is expected to swallow.
func (a ArtLoader) LoadImage(systemName string, g Game) (image.Image, error) {
	return imaging.Open(ArtPath(a.Root, systemName, g.ID), imaging.AutoOrientation(true))
}

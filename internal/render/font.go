package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontEngine names the parser/rasterizer backing a Font.
type FontEngine string

const (
	EngineOpenType FontEngine = "opentype"
	EngineFreeType FontEngine = "freetype"
)

// ParseFontEngine accepts "" as the default engine.
func ParseFontEngine(name string) (FontEngine, error) {
	switch FontEngine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineOpenType:
		return EngineOpenType, nil
	case EngineFreeType:
		return EngineFreeType, nil
	}
	return "", fmt.Errorf("unknown font engine %q", name)
}

// Font yields faces at a pixel size. Faces are cached per size.
type Font interface {
	Face(sizePx float64) (font.Face, error)
}

// maxCachedFaces bounds the per-size face cache; resizes otherwise grow it forever.
const maxCachedFaces = 8

type faceCache struct {
	mu    sync.Mutex
	faces map[float64]font.Face
	make  func(size float64) (font.Face, error)
}

func (c *faceCache) Face(size float64) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if face, ok := c.faces[size]; ok {
		return face, nil
	}
	face, err := c.make(size)
	if err != nil {
		return nil, err
	}
	if len(c.faces) >= maxCachedFaces {
		for k, f := range c.faces {
			_ = f.Close()
			delete(c.faces, k)
		}
	}
	c.faces[size] = face
	return face, nil
}

// LoadFont parses TrueType/OpenType data with the given engine.
// Sizes are in pixels: faces are built at 72 DPI so points equal pixels.
func LoadFont(data []byte, engine FontEngine) (Font, error) {
	switch engine {
	case "", EngineOpenType:
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse opentype font: %w", err)
		}
		return &faceCache{
			faces: make(map[float64]font.Face),
			make: func(size float64) (font.Face, error) {
				return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
			},
		}, nil
	case EngineFreeType:
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse truetype font: %w", err)
		}
		return &faceCache{
			faces: make(map[float64]font.Face),
			make: func(size float64) (font.Face, error) {
				return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}), nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown font engine %q", engine)
}

// Package fonts provides the bundled typeface for raster rendering.
//
// The typeface ships as Go source via golang.org/x/image/font/gofont,
// making it available without fonts installed on the host.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Cache for the parsed typeface (computed once on first access).
var (
	monoFont *truetype.Font
	monoErr  error
	monoOnce sync.Once
)

// Mono returns the parsed Go Mono typeface.
// The result is cached after first computation.
func Mono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
		if monoErr != nil {
			monoErr = fmt.Errorf("parse font: %w", monoErr)
		}
	})
	return monoFont, monoErr
}

// Face returns the typeface sized in points at 72 DPI, ready to set on a
// drawing context.
func Face(size float64) (font.Face, error) {
	f, err := Mono()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

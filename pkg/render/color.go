package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/sketchdoc/sketchdoc/pkg/model"
)

// styleOr reads a style key from an element, falling back when the key is
// missing or empty.
func styleOr(el model.Element, key, fallback string) string {
	if v, ok := el.StyleValue(key); ok && v != "" {
		return v
	}
	return fallback
}

// colorOr reads a style color for raster painting. The second result is
// false when the style disables painting with "none". Values that do not
// parse fall back.
func colorOr(el model.Element, key string, fallback color.Color) (color.Color, bool) {
	v, ok := el.StyleValue(key)
	if !ok || v == "" {
		return fallback, true
	}
	if strings.EqualFold(v, "none") {
		return nil, false
	}
	if c, ok := parseHexColor(v); ok {
		return c, true
	}
	return fallback, true
}

// parseHexColor parses #rgb and #rrggbb notation.
func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// strokeWidthOf parses the strokeWidth style, defaulting to 1 for missing
// or unusable values.
func strokeWidthOf(el model.Element) float64 {
	v, ok := el.StyleValue("strokeWidth")
	if !ok {
		return 1
	}
	w, err := strconv.ParseFloat(v, 64)
	if err != nil || w <= 0 {
		return 1
	}
	return w
}

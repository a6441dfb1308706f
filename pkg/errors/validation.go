package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Cell ids reserved by the drawio format for the page root and default
// layer. User elements may never claim them.
const (
	reservedRootID  = "0"
	reservedLayerID = "1"
)

// ValidateElementID validates an element id for safety and correctness.
// Ids end up as XML attributes and filesystem-adjacent keys, so the rules
// are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Not one of the reserved cell ids ("0" and "1")
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidID, "element id too long (max 256 characters)")
	}

	if id == reservedRootID || id == reservedLayerID {
		return New(ErrCodeInvalidID, "element id %q is reserved by the file format", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "element id contains invalid control characters")
		}
	}

	return nil
}

// ValidateStyleKey validates a style key. Keys are embedded verbatim in
// the "key=value;key=value" style grammar, so the separators themselves
// are forbidden.
func ValidateStyleKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidStyle, "style key cannot be empty")
	}

	if strings.ContainsAny(key, "=;") {
		return New(ErrCodeInvalidStyle, "style key cannot contain '=' or ';'")
	}

	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidStyle, "style key contains invalid characters")
		}
	}

	return nil
}

// ValidateStyleValue validates a style value. Values may be empty but may
// not contain the pair separator or control characters.
func ValidateStyleValue(value string) error {
	if strings.Contains(value, ";") {
		return New(ErrCodeInvalidStyle, "style value cannot contain ';'")
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyle, "style value contains invalid control characters")
		}
	}

	return nil
}

// ValidateSnapshotName validates a snapshot name for safety.
// It ensures the name is a simple key without path components.
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "snapshot name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "snapshot name too long (max 128 characters)")
	}

	// Must be a simple name, not a path
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "snapshot name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidInput, "snapshot name cannot contain traversal sequences")
	}

	// No hidden names (starting with .)
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "snapshot name cannot start with a dot")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot name contains invalid characters")
		}
	}

	return nil
}

// shapeKindRegex matches shape kind tags, including the dotted stencil
// names drawio uses for shape libraries (e.g. "mxgraph.aws4.lambda").
var shapeKindRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateShapeKind validates a shape kind tag.
func ValidateShapeKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidInput, "shape kind cannot be empty")
	}

	if !shapeKindRegex.MatchString(kind) {
		return New(ErrCodeInvalidInput, "invalid shape kind: %q", kind)
	}

	return nil
}

// hexColorRegex matches 6-digit hex colors with a leading hash.
var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor validates a color value: a 6-digit hex color or the
// literal "none".
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}

	if color == "none" {
		return nil
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (want #rrggbb or none)", color)
	}

	return nil
}

package errors

import (
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "node1", false},
		{"valid with dash", "api-gateway", false},
		{"valid uuid", "3f2a6c1e-9f0b-4d3c-8a6e-1b2c3d4e5f60", false},
		{"valid with dot", "edge.1", false},

		{"empty", "", true},
		{"reserved root", "0", true},
		{"reserved layer", "1", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidID)
			}
		})
	}
}

func TestValidateStyleKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "fillColor", false},
		{"valid dotted", "gradient.direction", false},

		{"empty", "", true},
		{"contains equals", "fill=Color", true},
		{"contains semicolon", "fill;Color", true},
		{"contains space", "fill Color", true},
		{"tab", "fill\tColor", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyleKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStyleKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStyleValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid color", "#ff0000", false},
		{"empty allowed", "", false},
		{"equals allowed", "a=b", false},

		{"semicolon", "a;b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyleValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStyleValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "before-refactor", false},
		{"valid with underscore", "v1_draft", false},
		{"valid with dot inside", "release.2", false},

		{"empty", "", true},
		{"with path /", "path/to/name", true},
		{"with path \\", "path\\to\\name", true},
		{"traversal", "..secret", true},
		{"hidden", ".hidden", true},
		{"too long", string(make([]byte, 200)), true},
		{"control char", "snap\x01shot", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateShapeKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"builtin", "rectangle", false},
		{"stencil path", "mxgraph.aws4.lambda", false},
		{"with dash", "cross-functional", false},

		{"empty", "", true},
		{"leading dot", ".rectangle", true},
		{"semicolon", "rect;angle", true},
		{"space", "rect angle", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShapeKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShapeKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"hex lower", "#ff0000", false},
		{"hex upper", "#FF00AA", false},
		{"none literal", "none", false},

		{"empty", "", true},
		{"missing hash", "ff0000", true},
		{"short form", "#f00", true},
		{"named color", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

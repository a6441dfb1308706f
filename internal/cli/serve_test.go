package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sketchdoc/sketchdoc/pkg/model"
)

func serveTestDiagram(t *testing.T) *model.Diagram {
	t.Helper()

	diagram := model.NewDiagram("Pipeline")
	page := model.NewPage("Overview")
	shape := model.NewShape("s1", model.ShapeKindRectangle)
	shape.SetPosition(model.Point{X: 0, Y: 0})
	shape.SetSize(100, 60)
	shape.SetValue("Intake")
	if err := page.AddElement(shape); err != nil {
		t.Fatalf("AddElement() error = %v", err)
	}
	diagram.AddPage(page)
	diagram.AddPage(model.NewPage("Details"))
	return diagram
}

func TestServeIndex(t *testing.T) {
	handler := newServeHandler(serveTestDiagram(t), 1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("GET / Content-Type = %q, want text/html", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"Pipeline", "Overview", "Details", "/pages/1.svg", "/pages/2.svg", "1 shapes"} {
		if !strings.Contains(body, want) {
			t.Errorf("index should contain %q, got:\n%s", want, body)
		}
	}
}

func TestServePageSVG(t *testing.T) {
	handler := newServeHandler(serveTestDiagram(t), 1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/1.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /pages/1.svg status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, "Intake") {
		t.Errorf("svg body should contain the rendered shape, got:\n%s", body)
	}
}

func TestServePagePNG(t *testing.T) {
	handler := newServeHandler(serveTestDiagram(t), 1)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/1.png", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /pages/1.png status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	// PNG magic number
	if body := rec.Body.Bytes(); len(body) < 8 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Error("body should be a PNG image")
	}
}

func TestServePageNotFound(t *testing.T) {
	handler := newServeHandler(serveTestDiagram(t), 1)

	for _, path := range []string{"/pages/0.svg", "/pages/3.svg", "/pages/x.svg", "/nope"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}

func TestPageByParam(t *testing.T) {
	diagram := serveTestDiagram(t)

	tests := []struct {
		param    string
		wantName string
		wantOK   bool
	}{
		{"1", "Overview", true},
		{"2", "Details", true},
		{"0", "", false},
		{"3", "", false},
		{"-1", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			page, ok := pageByParam(diagram, tt.param)
			if ok != tt.wantOK {
				t.Fatalf("pageByParam(%q) ok = %v, want %v", tt.param, ok, tt.wantOK)
			}
			if ok && page.Name() != tt.wantName {
				t.Errorf("pageByParam(%q) = %q, want %q", tt.param, page.Name(), tt.wantName)
			}
		})
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/drawio"
	"github.com/sketchdoc/sketchdoc/pkg/model"
	"github.com/sketchdoc/sketchdoc/pkg/render"
)

// serveOpts holds the flags for the serve command.
type serveOpts struct {
	addr  string
	scale float64
}

func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Preview rendered pages over HTTP",
		Long:  `Start a local HTTP server that renders the document on demand. The index lists all pages; each page is available as SVG at /pages/{n}.svg and as PNG at /pages/{n}.png. The document is read once at startup.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if opts.addr == "" {
				opts.addr = cfg.Serve.Addr
			}
			if opts.scale <= 0 {
				opts.scale = cfg.Export.Scale
			}
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default: localhost:8080)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixels per canvas unit")

	return cmd
}

func runServe(ctx context.Context, path string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	diagram, err := drawio.Import(path)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           requestLogger(logger)(newServeHandler(diagram, opts.scale)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving %s on http://%s", path, opts.addr)
	printInfo("Previewing %s", StyleValue.Render(path))
	printDetail("open http://%s (ctrl+c to stop)", opts.addr)

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// newServeHandler builds the preview router for a loaded document.
// Pages are addressed by their 1-based number, matching the export command.
func newServeHandler(diagram *model.Diagram, scale float64) http.Handler {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		writeIndex(w, diagram)
	})

	r.Get("/pages/{page}.svg", func(w http.ResponseWriter, req *http.Request) {
		page, ok := pageByParam(diagram, chi.URLParam(req, "page"))
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(render.SVG(page))
	})

	r.Get("/pages/{page}.png", func(w http.ResponseWriter, req *http.Request) {
		page, ok := pageByParam(diagram, chi.URLParam(req, "page"))
		if !ok {
			http.NotFound(w, req)
			return
		}
		data, err := render.PNG(page, scale)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	})

	return r
}

// pageByParam resolves a 1-based page number from a URL parameter.
func pageByParam(diagram *model.Diagram, param string) (*model.Page, bool) {
	n, err := strconv.Atoi(param)
	if err != nil || n < 1 || n > diagram.PageCount() {
		return nil, false
	}
	return diagram.PageAt(n - 1), true
}

// writeIndex renders the page listing as a minimal HTML document.
func writeIndex(w io.Writer, diagram *model.Diagram) {
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><title>%s</title></head>\n<body>\n", html.EscapeString(diagram.Name()))
	fmt.Fprintf(w, "<h1>%s</h1>\n<ul>\n", html.EscapeString(diagram.Name()))
	for i, page := range diagram.Pages() {
		shapes, connectors, groups := pageStats(page)
		fmt.Fprintf(w, `<li><a href="/pages/%d.svg">%s</a> (%d shapes, %d connectors, %d groups) <a href="/pages/%d.png">png</a></li>`+"\n",
			i+1, html.EscapeString(page.Name()), shapes, connectors, groups, i+1)
	}
	fmt.Fprintf(w, "</ul>\n</body>\n</html>\n")
}

// requestLogger logs each request at debug level with its handling time.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
		})
	}
}

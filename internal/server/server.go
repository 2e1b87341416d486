package server

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/textart-server/internal/ascii"
	"github.com/ironsheep/textart-server/internal/domain"
	"github.com/ironsheep/textart-server/internal/imaging"
	"github.com/ironsheep/textart-server/internal/staging"
)

// Converter turns a decoded image into a character grid.
type Converter interface {
	Options(req domain.ConversionRequest) (ascii.Options, error)
	Convert(ctx context.Context, img image.Image, opts ascii.Options) (*ascii.Grid, error)
	Palettes() *ascii.Catalog
}

// GlyphRenderer turns text into banner art.
type GlyphRenderer interface {
	Render(text, font string) (string, error)
	Fonts() []string
}

// Stager holds an upload for the duration of one request.
type Stager interface {
	Stage(r io.Reader, name string) (*staging.Upload, error)
}

// Options are the HTTP level settings.
type Options struct {
	Addr            string
	MaxUploadBytes  int64
	MaxPixels       int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	DefaultFont     string
	Render          imaging.RenderOptions
}

// Server is the HTTP surface over the converter and glyph renderer.
type Server struct {
	opts      Options
	converter Converter
	glyphs    GlyphRenderer
	stager    Stager
	logger    *slog.Logger
}

// New wires the collaborators together. A nil logger discards output.
func New(opts Options, converter Converter, glyphs GlyphRenderer, stager Stager, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.DefaultFont == "" {
		opts.DefaultFont = "standard"
	}
	return &Server{
		opts:      opts,
		converter: converter,
		glyphs:    glyphs,
		stager:    stager,
		logger:    logger,
	}
}

// Handler returns the routed handler with CORS, request ids, access
// logging and panic recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/image-to-ascii", s.handleImageToASCII)
	mux.HandleFunc("POST /api/text-to-ascii", s.handleTextToASCII)
	mux.HandleFunc("GET /api/fonts", s.handleFonts)
	mux.HandleFunc("GET /api/palettes", s.handlePalettes)
	mux.HandleFunc("GET /api", s.handleEndpoints)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})

	var h http.Handler = mux
	h = c.Handler(h)
	h = s.recoverPanic(h)
	h = s.accessLog(h)
	h = requestID(h)
	return h
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server.listen", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := s.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.Info("server.shutdown", "timeout", timeout)
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	})

	return g.Wait()
}

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ironsheep/textart-server/internal/ascii"
	"github.com/ironsheep/textart-server/internal/config"
	"github.com/ironsheep/textart-server/internal/glyph"
	"github.com/ironsheep/textart-server/internal/imaging"
	"github.com/ironsheep/textart-server/internal/logger"
	"github.com/ironsheep/textart-server/internal/server"
	"github.com/ironsheep/textart-server/internal/staging"
)

// app holds the collaborators built from one Config.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	converter *ascii.Converter
	renderer  *glyph.Renderer
	stager    *staging.Stager
}

func newApp(cfg config.Config, logOut io.Writer) (*app, error) {
	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logOut})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	catalog, err := ascii.NewCatalog(cfg.ASCII.Palettes)
	if err != nil {
		return nil, err
	}
	if _, err := catalog.Lookup(cfg.ASCII.Palette); err != nil {
		return nil, fmt.Errorf("ascii.palette: %w", err)
	}
	if _, err := imaging.ParseLuminanceMode(cfg.ASCII.Luminance); err != nil {
		return nil, fmt.Errorf("ascii.luminance: %w", err)
	}
	if !slices.Contains(imaging.Filters(), cfg.ASCII.Filter) {
		return nil, fmt.Errorf("ascii.filter: unknown filter %q", cfg.ASCII.Filter)
	}

	converter := ascii.NewConverter(catalog, ascii.Defaults{
		Width:            cfg.ASCII.Width,
		MaxWidth:         cfg.ASCII.MaxWidth,
		MaxHeight:        cfg.ASCII.MaxHeight,
		Threshold:        cfg.ASCII.Threshold,
		Palette:          cfg.ASCII.Palette,
		Luminance:        cfg.ASCII.Luminance,
		Filter:           cfg.ASCII.Filter,
		AspectCorrection: cfg.ASCII.AspectCorrection,
	}, log)

	renderer, err := glyph.New(cfg.Glyph.FontDir, log)
	if err != nil {
		return nil, err
	}
	if _, err := renderer.Render("", cfg.Glyph.DefaultFont); err != nil {
		return nil, fmt.Errorf("glyph.default_font: %w", err)
	}

	stager, err := staging.New(staging.Options{
		Mode:     staging.Mode(cfg.Staging.Mode),
		Dir:      cfg.Staging.Dir,
		MaxBytes: cfg.Server.MaxUploadBytes,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    log,
		converter: converter,
		renderer:  renderer,
		stager:    stager,
	}, nil
}

func (a *app) server() *server.Server {
	s := a.cfg.Server
	return server.New(server.Options{
		Addr:            s.Addr,
		MaxUploadBytes:  s.MaxUploadBytes,
		MaxPixels:       a.cfg.ASCII.MaxPixels,
		ReadTimeout:     s.ReadTimeout,
		WriteTimeout:    s.WriteTimeout,
		ShutdownTimeout: s.ShutdownTimeout,
		AllowedOrigins:  s.CORS.AllowedOrigins,
		DefaultFont:     a.cfg.Glyph.DefaultFont,
		Render:          a.renderOptions(),
	}, a.converter, a.renderer, a.stager, a.logger)
}

func (a *app) renderOptions() imaging.RenderOptions {
	return imaging.RenderOptions{
		Foreground: a.cfg.Render.Foreground,
		Background: a.cfg.Render.Background,
	}
}

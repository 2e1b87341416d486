package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/textart-server/internal/domain"
	"github.com/ironsheep/textart-server/internal/imaging"
)

func imageCmd(flags *rootFlags) *cobra.Command {
	var (
		req       domain.ConversionRequest
		width     int
		threshold int
		output    string
	)

	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Convert an image file to ASCII art",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("width") {
				req.Width = &width
			}
			if cmd.Flags().Changed("threshold") {
				req.Threshold = &threshold
			}
			if req.Format == "" && strings.EqualFold(filepath.Ext(output), ".png") {
				req.Format = domain.FormatPNG
			}
			if req.Format == domain.FormatPNG && output == "" {
				return fmt.Errorf("--format png needs --output")
			}
			req.Filename = args[0]

			opts, err := a.converter.Options(req)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			img, _, err := imaging.DecodeLimited(f, cfg.ASCII.MaxPixels)
			if err != nil {
				return err
			}

			grid, err := a.converter.Convert(runContext(cmd), img, opts)
			if err != nil {
				return err
			}

			if req.Format != domain.FormatPNG {
				return writeOut(cmd.OutOrStdout(), output, []byte(grid.String()+"\n"))
			}

			data, err := imaging.RenderPNG(grid.Rows, a.renderOptions())
			if err != nil {
				return err
			}
			if err := writeOut(cmd.OutOrStdout(), output, data); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "wrote %dx%d grid to %s\n", grid.Width, grid.Height, output)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&width, "width", "w", 0, "output width in characters (default from config)")
	f.IntVarP(&threshold, "threshold", "t", 255, "brightness at or above which a cell is blank, 256 disables")
	f.StringVarP(&req.Palette, "palette", "p", "", "palette name")
	f.StringVar(&req.Luminance, "luminance", "", "luminance formula: bt601, rec709 or lightness")
	f.StringVar(&req.Filter, "filter", "", "resampling filter")
	f.Float64Var(&req.Brightness, "brightness", 0, "brightness adjustment in percent, -100 to 100")
	f.Float64Var(&req.Contrast, "contrast", 0, "contrast adjustment in percent, -100 to 100")
	f.BoolVar(&req.Invert, "invert", false, "invert the image first")
	f.BoolVar(&req.Sharpen, "sharpen", false, "sharpen the image first")
	f.BoolVar(&req.Edges, "edges", false, "draw only detected edges")
	f.BoolVar(&req.Circle, "circle", false, "blank cells outside the inscribed circle")
	f.StringVar(&req.Format, "format", "", "output format: text or png")
	f.StringVarP(&output, "output", "o", "", "write to this file instead of stdout (a .png name implies --format png)")
	return cmd
}

func textCmd(flags *rootFlags) *cobra.Command {
	var font string

	cmd := &cobra.Command{
		Use:   "text <text...>",
		Short: "Render text as banner art",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if font == "" {
				font = cfg.Glyph.DefaultFont
			}

			out, err := a.renderer.Render(strings.Join(args, " "), font)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&font, "font", "f", "", "font name (default from config)")
	return cmd
}

// writeOut writes data to path, or to w when path is empty.
func writeOut(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/textart-server/internal/ascii"
)

func fontsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "List the available fonts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			def := cfg.Glyph.DefaultFont
			for _, name := range a.renderer.Fonts() {
				if name == def {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, color.New(color.Faint).Sprint("(default)"))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func palettesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the available palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printPalettes(cmd.OutOrStdout(), a.converter.Palettes())
			return nil
		},
	}
}

func printPalettes(w io.Writer, c *ascii.Catalog) {
	all := c.All()
	name := color.New(color.FgCyan, color.Bold)
	for _, n := range c.Names() {
		fmt.Fprintf(w, "%-10s %s\n", name.Sprint(n), all[n])
	}
}

func versionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "textart-server %s\n", info.Version)
			fmt.Fprintf(out, "  Build time: %s\n", info.BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", info.GitCommit)
		},
	}
}

// Package cli is the textart-server command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/textart-server/internal/config"
)

// BuildInfo is stamped into the binary by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func Execute(info BuildInfo) {
	cmd := newRootCmd(info)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(info BuildInfo) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "textart-server",
		Short:        "Turn images and text into character art",
		Long:         "textart-server converts images into ASCII art and renders text as banner art, over HTTP or from the command line.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", os.Getenv(config.EnvConfig),
		"path to a YAML config file (env "+config.EnvConfig+")")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "",
		"override the log level: debug, info, warn or error")

	cmd.AddCommand(
		serveCmd(flags, info),
		imageCmd(flags),
		textCmd(flags),
		fontsCmd(flags),
		palettesCmd(flags),
		versionCmd(info),
	)
	return cmd
}

// loadConfig reads the config file and applies the global flag overrides.
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// Command swl is the compositor's single entry point: a cobra root
// command whose surface is getopt-style single-dash flags, not a
// subcommand tree, per tools/swlctl.c + src/main.c's flag handling.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/swl-wm/swl/internal/compositor"
)

// version is overwritten at build time via -ldflags "-X main.version=...".
var version = "0.1.0-dev"

var (
	startupCommand string
	configPath     string
	debug          bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "swl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "swl",
		Short:        "swl is a tiling Wayland compositor core",
		SilenceUsage: true,
		RunE:         runCompositor,
	}

	flags := root.Flags()
	flags.StringVarP(&startupCommand, "startup", "s", "", "shell command to spawn once the compositor is ready")
	flags.StringVarP(&configPath, "config", "c", "", "path to a config.toml, overriding the XDG search order")
	flags.BoolVarP(&debug, "debug", "d", false, "raise the logger to debug level for this process only")

	var printVersion bool
	flags.BoolVarP(&printVersion, "version", "v", false, "print the version and exit")
	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		if printVersion {
			fmt.Printf("swl version %s\n", version)
			os.Exit(0)
		}
		return nil
	}

	return root
}

func runCompositor(cmd *cobra.Command, args []string) error {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	c, err := compositor.New(configPath)
	if err != nil {
		return fmt.Errorf("initializing compositor: %w", err)
	}

	if startupCommand != "" {
		c.Config.SetString("general.startup_command", startupCommand)
	}

	// Run installs its own SIGINT/SIGTERM/SIGCHLD handling, so the
	// background context here only needs to carry process lifetime.
	return c.Run(context.Background())
}

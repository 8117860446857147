// Command hostdemo runs a small host application on the desktop stack: an
// animated gradient background, live stats and controller logging. Builds
// with cgo on Windows show the stats in a Dear ImGui window; other builds
// log them. Escape quits, F1 toggles the animation and F11 fullscreen.
//
// Positional arguments are passed through to the host unparsed:
//
//	hostdemo --config demo.yaml -- --level 3
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/hostapp"
	"github.com/gogpu/hostapp/desktop"
)

var rootCmd = &cobra.Command{
	Use:          "hostdemo [flags] [-- host args]",
	Short:        "Run the hostapp demo",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringP("config", "c", "", "YAML config file")
	f.String("title", "", "window title")
	f.Int("width", 0, "initial window width")
	f.Int("height", 0, "initial window height")
	f.Uint32("msaa", 0, "MSAA sample count (1 or 4)")
	f.String("present-mode", "", "fifo, mailbox or immediate")
	f.String("backends", "", "primary, all, vulkan, metal, dx12 or gl")
	f.String("input", "", "secondary input source (sdl, none)")
	f.Bool("fullscreen", false, "start in fullscreen")
	f.String("log-level", "info", "debug, info, warn or error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	level, _ := flags.GetString("log-level")
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}
	hostapp.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	path, _ := flags.GetString("config")
	cfg, err := demoConfig(path)
	if err != nil {
		return err
	}
	cfg = applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	return desktop.Launch(cfg, demoIcon(), args, func(app *hostapp.App, sys *desktop.Subsystems) hostapp.Delegate {
		return newDemo(app, sys)
	})
}

const demoTitle = "hostapp demo"

// demoConfig returns the demo configuration, read from path when it is set.
// A file that leaves the title at the library default keeps the demo title.
func demoConfig(path string) (hostapp.Config, error) {
	if path == "" {
		return hostapp.DefaultConfig().WithTitle(demoTitle), nil
	}
	cfg, err := hostapp.LoadConfig(path)
	if err != nil {
		return hostapp.Config{}, err
	}
	if cfg.Title == hostapp.DefaultConfig().Title {
		cfg = cfg.WithTitle(demoTitle)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg hostapp.Config) hostapp.Config {
	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Title, _ = flags.GetString("title")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("msaa") {
		cfg.SampleCount, _ = flags.GetUint32("msaa")
	}
	if flags.Changed("present-mode") {
		cfg.PresentMode, _ = flags.GetString("present-mode")
	}
	if flags.Changed("backends") {
		cfg.Backends, _ = flags.GetString("backends")
	}
	if flags.Changed("input") {
		cfg.Input.Source, _ = flags.GetString("input")
	}
	if flags.Changed("fullscreen") {
		cfg.Fullscreen, _ = flags.GetBool("fullscreen")
	}
	return cfg
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

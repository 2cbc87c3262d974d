package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gregjohnson2017/glwrap/pkg/config"
	"github.com/gregjohnson2017/glwrap/pkg/log"
	"github.com/gregjohnson2017/glwrap/pkg/model"
	"github.com/gregjohnson2017/glwrap/pkg/perf"
	"github.com/gregjohnson2017/glwrap/pkg/util"
	"github.com/gregjohnson2017/glwrap/pkg/viewer"
	"github.com/gregjohnson2017/glwrap/pkg/window"
	"github.com/spf13/cobra"
)

func init() {
	// GL contexts and window events belong to the main thread
	runtime.LockOSThread()
}

type options struct {
	configPath string
	debug      bool
	perf       bool
	backend    string
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "glwrap [model]",
		Short:         "View a glTF model with an optional skybox",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVar(&opts.debug, "debug", false, "log debug messages, including OpenGL driver messages")
	flags.BoolVar(&opts.perf, "perf", false, "log average frame times once a second")
	flags.StringVar(&opts.backend, "backend", "", "window backend: sdl or glfw")
	return cmd
}

// loadConfig reads the configuration file, if any, and applies the command
// line on top of it.
func loadConfig(opts options, args []string) (*config.Config, error) {
	cfg := config.New()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if opts.perf {
		cfg.Log.Perf = true
	}
	if opts.backend != "" {
		cfg.Window.Backend = opts.backend
	}
	if len(args) == 1 {
		cfg.Model = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) {
	log.SetInfoOutput(os.Stdout)
	log.SetWarnOutput(os.Stderr)
	log.SetFatalOutput(os.Stderr)
	if cfg.Log.Debug {
		log.SetDebugOutput(os.Stdout)
	}
	if cfg.Log.Perf {
		log.SetPerfOutput(os.Stdout)
	}
	log.SetColorized(cfg.Log.Color)
	perf.SetMetricsEnabled(cfg.Log.Perf)
}

func run(cfg *config.Config) error {
	setupLogging(cfg)
	win, err := window.Open(cfg.Window, cfg.Log.Debug)
	if err != nil {
		return err
	}
	defer win.Destroy()

	if cfg.Model == "" {
		if cfg.Model, err = util.OpenFileDialog(window.SDLWindow(win), "Open glTF model"); err != nil {
			return err
		}
	}
	mdl, err := model.Load(cfg.Model)
	if err != nil {
		return err
	}
	width, height := win.Size()
	v, err := viewer.New(cfg, mdl, width, height)
	if err != nil {
		return err
	}
	defer v.Delete()
	return v.Run(win)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

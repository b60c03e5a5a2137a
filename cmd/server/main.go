package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/imageview/internal/infrastructure/config"
	"github.com/GriffinCanCode/imageview/internal/infrastructure/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	host        string
	port        string
	staticDir   string
	dev         bool
	legacyPaths bool
	prewarm     bool
}

func run(args []string) error {
	var f flags

	flagSet := pflag.NewFlagSet("imageview", pflag.ContinueOnError)
	flagSet.StringVarP(&f.configPath, "config", "c", "", "YAML or TOML config file")
	flagSet.StringVar(&f.host, "host", "", "address to listen on (default 0.0.0.0)")
	flagSet.StringVar(&f.port, "port", "", "port to listen on (default 8000)")
	flagSet.StringVar(&f.staticDir, "static-dir", "", "directory holding the web UI (default static)")
	flagSet.BoolVar(&f.dev, "dev", false, "colored console logs at debug level")
	flagSet.BoolVar(&f.legacyPaths, "legacy-paths", false, "serve /api/raw/<subdir>/<file>")
	flagSet.BoolVar(&f.prewarm, "prewarm", false, "register the whole image tree at startup")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if f.configPath != "" {
		if err := cfg.LoadFile(f.configPath); err != nil {
			return err
		}
	}
	f.apply(flagSet, cfg)

	switch rest := flagSet.Args(); len(rest) {
	case 0:
		if cfg.Gallery.BaseDir == "" {
			printHelp(flagSet)
			return errors.New("image directory is required")
		}
	case 1:
		cfg.Gallery.BaseDir = rest[0]
	default:
		return fmt.Errorf("unexpected argument: %s", rest[1])
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving images from %s\n", cfg.Gallery.BaseDir)
	fmt.Printf("Open http://%s in your browser\n", cfg.Addr())

	return srv.Run(ctx)
}

// apply copies explicitly set flags over cfg
func (f *flags) apply(flagSet *pflag.FlagSet, cfg *config.Config) {
	if flagSet.Changed("host") {
		cfg.Server.Host = f.host
	}
	if flagSet.Changed("port") {
		cfg.Server.Port = f.port
	}
	if flagSet.Changed("static-dir") {
		cfg.Gallery.StaticDir = f.staticDir
	}
	if flagSet.Changed("dev") {
		cfg.Logging.Development = f.dev
		if f.dev {
			cfg.Logging.Level = "debug"
		}
	}
	if flagSet.Changed("legacy-paths") {
		cfg.Gallery.LegacyPaths = f.legacyPaths
	}
	if flagSet.Changed("prewarm") {
		cfg.Registry.Prewarm = f.prewarm
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `imageview serves a directory of images as a browsable gallery.

Usage:
  imageview [flags] <image_dir>

The image directory may also be given as GALLERY_BASE_DIR or gallery.base_dir
in the config file. Flags override the config file, which overrides the
environment.

Flags:
%s`, flagSet.FlagUsages())
}

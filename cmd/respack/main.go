/*
respack packs the resources declared in manifests into a data blob and a
key index.

	respack [flags] <resource_root_dir> [extra_manifest ...]

The primary manifest is <resource_root_dir>/resource.cgures.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/mrhapile/respack/pkg/config"
	"github.com/mrhapile/respack/pkg/logging"
	"github.com/mrhapile/respack/pkg/manifest"
	"github.com/mrhapile/respack/pkg/pack"
	"github.com/mrhapile/respack/pkg/watch"
)

var errUsage = errors.New("usage: respack [-config file] [-report] [-watch] <resource_root_dir> [extra_manifest ...]")

func main() {
	if err := mainE(os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.Sender(log.New(os.Stderr), logging.TagCLI).Error(err.Error())
		}
		os.Exit(-1)
	}
}

func mainE(args []string) error {
	fs := flag.NewFlagSet("respack", flag.ContinueOnError)
	configFlag := fs.String("config", "", "TOML configuration file")
	reportFlag := fs.Bool("report", false, "write resource.yaml next to the index")
	watchFlag := fs.Bool("watch", false, "rebuild whenever a manifest or asset changes")
	encodingFlag := fs.String("encoding", "", "manifest encoding: auto, utf-8 or utf-16le")
	levelFlag := fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return err
		}
	} else if fs.NArg() == 0 {
		return errUsage
	}
	if fs.NArg() > 0 {
		cfg.Root = fs.Arg(0)
		cfg.Extra = append(cfg.Extra, fs.Args()[1:]...)
	}
	if *reportFlag {
		cfg.Report = true
	}
	if *encodingFlag != "" {
		cfg.Encoding = *encodingFlag
	}
	if *levelFlag != "" {
		cfg.LogLevel = *levelFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	cli := logging.Sender(logger, logging.TagCLI)

	build := func() error {
		decls, err := manifest.ParseFiles(cfg.ManifestPaths(), cfg.ManifestEncoding())
		if err != nil {
			return err
		}
		logging.Sender(logger, logging.TagManifest).Debug("parsed manifests", "declarations", len(decls))

		result, err := pack.Pack(decls, append(cfg.PackOptions(), pack.WithLogger(logger))...)
		if err != nil {
			return err
		}
		cli.Info("wrote resources", "data", result.DataPath, "index", result.IndexPath, "count", result.ResourceCount)
		return nil
	}

	if err := build(); err != nil {
		if !*watchFlag {
			return err
		}
		cli.Error(err.Error())
	}
	if !*watchFlag {
		return nil
	}
	return watchAndRebuild(cfg, logger, build)
}

func watchAndRebuild(cfg config.Config, logger *log.Logger, build func() error) error {
	sourceDir := cfg.SourceDir
	if sourceDir == "" {
		sourceDir = cfg.Root
	}
	paths := append(cfg.ManifestPaths(), sourceDir)
	w, err := watch.New(paths,
		watch.WithLogger(logger),
		watch.WithIgnore(
			filepath.Join(cfg.Root, cfg.DataFile),
			filepath.Join(cfg.Root, cfg.IndexFile),
			filepath.Join(cfg.Root, pack.ReportFileName),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logging.Sender(logger, logging.TagCLI).Info("watching for changes", "root", cfg.Root)
	return w.Run(ctx, build)
}

// Package cmd implements the pft command line application.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/config"
	"github.com/etnz/tracker/kv"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&deleteCmd{},
	&listCmd{},
	&searchCmd{},
	&statsCmd{},
	&budgetCmd{},
	&categoryCmd{},
	&rateCmd{},
	&importCmd{},
	&exportCmd{},
	&clearCmd{},
	&seedCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application the lifecycle is one command per process, so global
// flags are package globals.
var (
	configPath  = flag.String("config", "", "Path to the configuration file (default "+config.DefaultFile+")")
	storageFlag = flag.String("storage", "", "Storage backend: file, sqlite, redis or memory. Overrides the configuration.")
	dataFlag    = flag.String("data", "", "Data directory (file storage) or database file (sqlite). Overrides the configuration.")
	redisFlag   = flag.String("redis-addr", "", "Redis address, redis storage only. Overrides the configuration.")
	Verbose     = flag.Bool("v", false, "Enable debug logging.")
)

// logger builds the application logger from the global flags.
func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	if *storageFlag != "" {
		cfg.Storage.Backend = *storageFlag
	}
	if *dataFlag != "" {
		cfg.Storage.Path = *dataFlag
	}
	if *redisFlag != "" {
		cfg.Storage.Addr = *redisFlag
	}
	if *Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// openKV builds the key-value store the configuration selects.
func openKV(cfg config.Config) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return kv.NewMemory(), nil
	case "file":
		return kv.OpenFile(cfg.Storage.Path)
	case "sqlite":
		path := cfg.Storage.Path
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			path = filepath.Join(path, "tracker.db")
		}
		return kv.OpenSQLite(path)
	case "redis":
		return kv.OpenRedis(cfg.Storage.Addr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// openStore is the central function commands use to get a ready store. The
// returned close function releases the underlying storage.
func openStore(ctx context.Context) (*tracker.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kvs, err := openKV(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := tracker.Open(kvs)
	if err != nil {
		kvs.Close()
		return nil, nil, err
	}
	store.SetLogger(logger())
	if err := store.SeedIfEmpty(ctx, cfg.Seed.URL); err != nil {
		kvs.Close()
		return nil, nil, err
	}
	return store, func() { kvs.Close() }, nil
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
	"github.com/DaanHessen/kidsrd/internal/store"
	"github.com/DaanHessen/kidsrd/internal/text"
	"github.com/DaanHessen/kidsrd/internal/ui"
	"github.com/DaanHessen/kidsrd/internal/util"
)

var version = "0.1.0"

func main() {
	// .env is optional
	_ = godotenv.Load()

	fs := pflag.NewFlagSet(util.AppName, pflag.ExitOnError)
	configPath := fs.String("config", util.DefaultConfigPath(), "config file (TOML)")
	theme := fs.String("theme", "", "colour theme: catppuccin|dracula|gruvbox|solarized_dark")
	latency := fs.Duration("latency", 0, "simulated generation delay")
	source := fs.String("catalog", "", "catalog source: builtin|file|postgres")
	seedFile := fs.String("seed-file", "", "TOML seed catalog for --catalog=file")
	dsn := fs.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN for --catalog=postgres and migrate")
	logLevel := fs.String("log-level", "", "debug|info|warn|error")
	logFile := fs.String("log-file", "", "log file path")
	dev := fs.Bool("dev", false, "development logging (panics on precondition violations)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s [flags] | migrate up|down | catalog | version\n\n", util.AppName)
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := util.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if fs.Changed("theme") {
		cfg.Theme = *theme
	}
	if fs.Changed("latency") {
		cfg.Latency = util.Duration(*latency)
	}
	if fs.Changed("catalog") {
		cfg.Catalog.Source = *source
	}
	if fs.Changed("seed-file") {
		cfg.Catalog.SeedFile = *seedFile
	}
	if *dsn != "" && (fs.Changed("dsn") || cfg.Catalog.DSN == "") {
		cfg.Catalog.DSN = *dsn
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if fs.Changed("log-file") {
		cfg.Log.File = *logFile
	}
	if fs.Changed("dev") {
		cfg.Log.Development = *dev
	}
	cfg.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := fs.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println(util.AppName, version)
			return
		case "migrate":
			migrateCmd(ctx, cfg, args[1:])
			return
		case "catalog":
			if err := cfg.Validate(); err != nil {
				log.Fatal(err)
			}
			printCatalog(ctx, cfg)
			return
		default:
			fs.Usage()
			os.Exit(2)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger, err := util.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		logger.Error("catalog source", zap.Error(err))
		log.Fatal(err)
	}
	defer closeSrc()

	seed, err := src.Load(ctx)
	if err != nil {
		logger.Error("catalog load", zap.Error(err))
		log.Fatal(err)
	}
	catalog, err := engine.NewCatalog(seed.Normalize())
	if err != nil {
		logger.Error("catalog invalid", zap.Error(err))
		log.Fatal(err)
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("source", cfg.Catalog.Source),
		zap.Duration("latency", cfg.Latency.Std()))

	deps := ui.Deps{
		Catalog:   catalog,
		Source:    src,
		Generator: engine.NewGenerator(clockwork.NewRealClock(), cfg.Latency.Std(), logger),
		Renderer:  text.NewGlamour(""),
		Log:       logger,
		Theme:     cfg.Theme,
		Version:   version,
	}
	if err := ui.Run(ctx, deps); err != nil {
		logger.Error("ui exited", zap.Error(err))
		log.Fatal(err)
	}
}

// openSource picks the catalog source. The returned close func is never nil.
func openSource(ctx context.Context, cfg util.Config) (engine.Source, func(), error) {
	switch cfg.Catalog.Source {
	case util.SourceFile:
		return engine.FileSource{Path: cfg.Catalog.SeedFile}, func() {}, nil
	case util.SourcePostgres:
		db, err := store.Open(ctx, cfg.Catalog.DSN)
		if err != nil {
			return nil, func() {}, err
		}
		return store.CatalogSource{DB: db}, func() { _ = db.Close() }, nil
	default:
		return engine.StaticSource{Seed: engine.DefaultSeed()}, func() {}, nil
	}
}

func migrateCmd(ctx context.Context, cfg util.Config, args []string) {
	if len(args) < 1 {
		log.Fatal("migrate requires 'up' or 'down'")
	}
	if cfg.Catalog.DSN == "" {
		log.Fatal("migrate needs --dsn or DATABASE_URL")
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(cfg.Catalog.DSN)
	if err != nil {
		log.Fatal(err)
	}
	switch args[0] {
	case "up":
		if err := migrator.Up(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}

func printCatalog(ctx context.Context, cfg util.Config) {
	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeSrc()
	seed, err := src.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	catalog, err := engine.NewCatalog(seed.Normalize())
	if err != nil {
		log.Fatal(err)
	}
	for _, kind := range engine.AllKinds {
		fmt.Printf("%s:\n", kind)
		for _, it := range catalog.List(kind) {
			fmt.Printf("  %5d  %s\n", it.Likes, it.Title)
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/todoplus/internal/config"
	"github.com/meltforce/todoplus/internal/seed"
	"github.com/meltforce/todoplus/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("todoplus-seed", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	inserted, err := db.SeedExercises(ctx, seed.Exercises())
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	total, err := db.CountExercises(ctx)
	if err != nil {
		log.Error("counting exercises failed", "error", err)
		os.Exit(1)
	}
	log.Info("exercise library seeded", "inserted", inserted, "total", total)
}

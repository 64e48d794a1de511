package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meltforce/todoplus/internal/config"
	"github.com/meltforce/todoplus/internal/importer"
	"github.com/meltforce/todoplus/internal/storage"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	email := flag.String("user", "", "email of the account to import into")
	dir := flag.String("path", "", "directory containing CSV exports")
	dryRun := flag.Bool("dry-run", false, "parse files but don't write anything")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("todoplus-import", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *email == "" || *dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: todoplus-import -user <email> -path <export dir> [-config config.yaml] [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

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

	user, err := db.GetUserByEmail(ctx, *email)
	if err != nil {
		log.Error("user lookup failed", "email", *email, "error", err)
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	state, err := importer.OpenStateDB(filepath.Join(homeDir, ".todoplus-import"))
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode — files will be parsed but nothing written")
	}

	imp := importer.New(db, state, user.ID, *dryRun, log)
	stats, err := imp.Run(ctx, *dir)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("import complete")
}

func printStats(stats *importer.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files total:       %d\n", stats.FilesTotal)
	fmt.Printf("  Files imported:    %d\n", stats.FilesImported)
	fmt.Printf("  Files skipped:     %d (already imported)\n", stats.FilesSkipped)
	fmt.Printf("  Sessions imported: %d\n", stats.SessionsImported)
	fmt.Printf("  Volume imported:   %.1f kg\n", stats.VolumeImportedKg)

	if len(stats.UnmatchedNames) > 0 {
		fmt.Printf("\n  Exercises not in library (skipped):\n")
		for _, name := range stats.UnmatchedNames {
			fmt.Printf("    - %s\n", name)
		}
	}
	fmt.Println()
}

// Package main provides the loaddata command, which imports tag and
// ingredient fixtures into the catalog.
//
// Usage:
//
//	loaddata [-db path] [-data dir] [file ...]
//
// With no file arguments, every fixture in the import directory is
// loaded. Imports are idempotent and safe to re-run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tvules/Foodgram/internal/catalog"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/store"
)

func main() {
	dataDir := flag.String("data", "./data", "application data directory")
	dbPath := flag.String("db", "", "sqlite database path (defaults to <data>/foodgram.db)")
	importDir := flag.String("dir", "", "fixture directory (defaults to <data>/import)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(*logLevel),
		Format:      "pretty",
		Environment: "development",
	})

	if err := run(log.Logger, *dataDir, *dbPath, *importDir, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "loaddata: %v\n", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, dataDir, dbPath, importDir string, files []string) error {
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "foodgram.db")
	}
	if importDir == "" {
		importDir = filepath.Join(dataDir, "import")
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	index, err := search.NewSearchIndex(search.Options{
		DataPath: dataDir,
		Logger:   log,
	})
	if err != nil {
		return fmt.Errorf("open search index: %w", err)
	}
	defer index.Close()

	loader := catalog.NewLoader(st, index, log)
	ctx := context.Background()

	if len(files) == 0 {
		runs, err := loader.LoadDir(ctx, importDir)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			log.Warn("no fixture files found", "dir", importDir)
		}
		return nil
	}

	for _, file := range files {
		if _, err := loader.LoadFile(ctx, file); err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

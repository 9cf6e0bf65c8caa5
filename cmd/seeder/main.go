// cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammerola/frontdesk-be/internal/adapters/db"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/internal/pkg/config"
	"github.com/ammerola/frontdesk-be/internal/pkg/logger"
)

func main() {
	var (
		receiptsDir = flag.String("receipts", "./receipts", "Directory containing .xlsx and .pdf stock receipts")
		stateFile   = flag.String("state", "./.seed_state.json", "State file for tracking progress")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		demo        = flag.Bool("demo", true, "Seed demo employees, customers, devices and stock")
		dryRun      = flag.Bool("dry-run", false, "Parse receipts without modifying the database")
		force       = flag.Bool("force", false, "Ignore the state file and apply everything again")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	state := &SeederState{}
	if !*force {
		if state, err = loadState(*stateFile); err != nil {
			slogger.Error("failed to load state", "err", err)
			os.Exit(1)
		}
	}

	var seeder *Seeder
	if !*dryRun {
		if err := db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
			DatabaseURL: cfg.GetDatabaseURL(),
			SourcePath:  cfg.Database.MigrationPath,
		}, slogger, 3); err != nil {
			slogger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}

		database, err := db.NewDatabase(ctx, &db.Config{
			Host:               cfg.Database.Host,
			Port:               cfg.Database.Port,
			User:               cfg.Database.User,
			Password:           cfg.Database.Password,
			Database:           cfg.Database.Name,
			SSLMode:            cfg.Database.SSLMode,
			MaxConnections:     2,
			MinConnections:     1,
			ConnectTimeout:     cfg.Database.ConnectTimeout,
			StatementCacheMode: cfg.Database.StatementCacheMode,
		}, slogger)
		if err != nil {
			slogger.Error("failed to connect to database", "err", err)
			os.Exit(1)
		}
		defer database.Close()

		// the seeder runs without the listing cache; entries expire on their TTL
		seeder = &Seeder{
			employees: services.NewEmployeeService(db.NewEmployeeRepository(database, slogger), nil, slogger),
			customers: services.NewCustomerService(db.NewCustomerRepository(database, slogger), nil, slogger),
			devices:   services.NewDeviceService(db.NewDeviceRepository(database, slogger), nil, slogger),
			inventory: services.NewInventoryService(db.NewInventoryRepository(database, slogger), nil, cfg.Inventory.LowStockThreshold, slogger),
			logger:    slogger,
		}
	} else {
		seeder = &Seeder{logger: slogger}
	}

	if *demo && !state.DemoSeeded && !*dryRun {
		if err := seeder.SeedDemo(ctx); err != nil {
			slogger.Error("failed to seed demo data", "err", err)
			os.Exit(1)
		}
		state.DemoSeeded = true
	}

	files, err := ReceiptFiles(*receiptsDir)
	if err != nil && !os.IsNotExist(err) {
		slogger.Error("failed to list receipt files", "err", err)
		os.Exit(1)
	}

	totalLines := 0
	failed := []string{}
	for i, file := range files {
		name := filepath.Base(file)
		fmt.Printf("PROGRESS: Processing %d/%d: %s\n", i+1, len(files), name)

		if state.processed(name) {
			slogger.Info("skipping already processed receipt", slog.String("file", name))
			continue
		}

		lines, err := seeder.ImportReceipts(ctx, file, *dryRun)
		if err != nil {
			slogger.Error("failed to import receipt", slog.String("file", name), "err", err)
			fmt.Printf("ERROR: %s - %v\n", name, err)
			failed = append(failed, name)
			continue
		}

		fmt.Printf("SUCCESS: %s - %d lines\n", name, lines)
		totalLines += lines
		if !*dryRun {
			state.ProcessedReceipts = append(state.ProcessedReceipts, name)
		}
	}

	if !*dryRun {
		if err := state.save(*stateFile); err != nil {
			slogger.Warn("failed to save state", "err", err)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Receipt files: %d\n", len(files))
	fmt.Printf("Stock lines applied: %d\n", totalLines)
	if len(failed) > 0 {
		fmt.Printf("\nFailed files (%d):\n", len(failed))
		for _, name := range failed {
			fmt.Printf("  - %s\n", name)
		}
	}

	slogger.Info("seed operation completed",
		slog.Int("files", len(files)),
		slog.Int("lines", totalLines),
		slog.Int("failed", len(failed)))

	if *dryRun {
		fmt.Println("\n[DRY RUN] No changes were made to the database")
	}
}

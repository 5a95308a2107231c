package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/triptally/triptally/internal/categorize"
	"github.com/triptally/triptally/internal/config"
	"github.com/triptally/triptally/internal/rules"
	"github.com/triptally/triptally/internal/service"
	"github.com/triptally/triptally/internal/storage"
)

// initStorage opens the configured database and runs migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initCategorizer builds a categorizer from the configured rule table,
// falling back to the built-in rules when no file is configured.
func initCategorizer() (*categorize.Categorizer, error) {
	rulesPath := config.ExpandPath(viper.GetString("rules.path"))

	ruleList, err := rules.LoadOrDefault(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule table: %w", err)
	}

	table, err := rules.NewTable(ruleList)
	if err != nil {
		return nil, fmt.Errorf("invalid rule table: %w", err)
	}

	return categorize.New(table)
}

// parseDateRange resolves the start/end flags, defaulting to the last N days.
func parseDateRange(startStr, endStr string, days int) (start, end time.Time, err error) {
	end = time.Now()
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
	}

	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
	} else {
		if days <= 0 {
			days = 30
		}
		start = end.AddDate(0, 0, -days)
	}

	if start.After(end) {
		return start, end, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end, nil
}

// Package engine orchestrates the analysis pipeline: categorize, segment,
// synthesize, persist.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/triptally/triptally/internal/categorize"
	"github.com/triptally/triptally/internal/model"
	"github.com/triptally/triptally/internal/purpose"
	"github.com/triptally/triptally/internal/segment"
	"github.com/triptally/triptally/internal/service"
)

const categorizeChunkSize = 100

// Engine wires the three analysis stages to the record store. The stages
// themselves are pure; the engine owns all I/O around them.
type Engine struct {
	storage     service.Storage
	categorizer *categorize.Categorizer
	synthesizer *purpose.Synthesizer
	logger      *slog.Logger
	segParams   segment.Params
}

// New creates an analysis engine.
func New(storage service.Storage, categorizer *categorize.Categorizer, synthesizer *purpose.Synthesizer, segParams segment.Params) *Engine {
	return &Engine{
		storage:     storage,
		categorizer: categorizer,
		synthesizer: synthesizer,
		segParams:   segParams,
		logger:      slog.Default().With("component", "engine"),
	}
}

// Options configures one analysis run.
type Options struct {
	StartDate    *time.Time
	EndDate      *time.Time
	AccountID    string
	Workers      int
	ShowProgress bool
}

// Result summarizes a completed analysis run.
type Result struct {
	Trips        []model.Trip
	Transactions int
	Unknown      int
	ReadyTrips   int
	Duration     time.Duration
}

// Analyze runs the full pipeline over the stored transactions matching the
// options and persists the recomputed trips. An empty transaction set is a
// valid no-op, not an error.
func (e *Engine) Analyze(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	txns, err := e.storage.GetTransactions(ctx, service.TransactionFilter{
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		AccountID: opts.AccountID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	result := &Result{Transactions: len(txns)}
	if len(txns) == 0 {
		e.logger.Info("No transactions to analyze")
		result.Duration = time.Since(started)
		return result, nil
	}

	categorized, err := e.categorizeAll(ctx, txns, opts)
	if err != nil {
		return nil, err
	}
	for _, ct := range categorized {
		if ct.IsUnknown() {
			result.Unknown++
		}
	}

	if err := e.storage.SaveCategorizations(ctx, categorized); err != nil {
		return nil, fmt.Errorf("failed to save categorizations: %w", err)
	}

	trips := segment.Segment(categorized, e.segParams)
	e.logger.Info("Segmented transactions into trips",
		"transactions", len(categorized),
		"trips", len(trips))

	for i := range trips {
		synth, err := e.synthesizer.Synthesize(&trips[i])
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize purpose for trip %d: %w", i, err)
		}
		trips[i].BusinessPurpose = synth.BusinessPurpose
		trips[i].Confidence = synth.Confidence
		trips[i].Ready = synth.Ready
		if synth.Ready {
			result.ReadyTrips++
		}
	}

	if err := e.storage.ReplaceTrips(ctx, opts.AccountID, trips); err != nil {
		return nil, fmt.Errorf("failed to save trips: %w", err)
	}

	result.Trips = trips
	result.Duration = time.Since(started)

	e.logger.Info("Analysis complete",
		"transactions", result.Transactions,
		"unknown", result.Unknown,
		"trips", len(trips),
		"ready", result.ReadyTrips,
		"duration", result.Duration)

	return result, nil
}

func (e *Engine) categorizeAll(ctx context.Context, txns []model.Transaction, opts Options) ([]model.CategorizedTransaction, error) {
	var bar *progressbar.ProgressBar
	if opts.ShowProgress {
		bar = progressbar.NewOptions(len(txns),
			progressbar.OptionSetDescription("Categorizing transactions"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	categorized := make([]model.CategorizedTransaction, 0, len(txns))
	for start := 0; start < len(txns); start += categorizeChunkSize {
		end := start + categorizeChunkSize
		if end > len(txns) {
			end = len(txns)
		}

		chunk, err := e.categorizer.CategorizeBatch(ctx, txns[start:end], opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to categorize transactions: %w", err)
		}
		categorized = append(categorized, chunk...)

		if bar != nil {
			_ = bar.Add(end - start)
		}
	}

	return categorized, nil
}

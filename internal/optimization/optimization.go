// Package optimization runs a search-driven optimization end to end: search the
// asset index, build a whitelist and a cash portfolio, call the optimizer and
// summarise the optimized portfolio.
package optimization

import (
	"context"
	"fmt"

	"github.com/kelsos/rover-sync/internal/flatten"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/portfolio"
	"github.com/kelsos/rover-sync/internal/search"
	"github.com/kelsos/rover-sync/internal/table"
)

const (
	DefaultSearchSize                       = 1000
	DefaultIndex                            = "rover-universe-assets"
	DefaultMaxInstrumentConcentration       = 0.10
	DefaultMinTradeSize                     = 0.01
	DefaultStartingCash               int64 = 100_000
	DefaultYieldObjectiveWeight             = 1.0
)

type OptimizerAPI interface {
	OptimizePortfolio(ctx context.Context, request models.OptimizePortfolioRequest) (*models.OptimizePortfolioResponse, error)
}

type Searcher interface {
	Search(ctx context.Context, index string, size int, query map[string]any) (map[string]any, error)
}

// SearchOptions selects the index and page size of a search. Zero values take the defaults.
type SearchOptions struct {
	Size  int
	Index string
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Size <= 0 {
		o.Size = DefaultSearchSize
	}
	if o.Index == "" {
		o.Index = DefaultIndex
	}
	return o
}

// Options tunes an optimization run. Zero values take the defaults.
type Options struct {
	MaxInstrumentConcentration float64
	MinTradeSize               float64
	StartingCash               int64
	Search                     SearchOptions
}

func DefaultOptions() Options {
	return Options{
		MaxInstrumentConcentration: DefaultMaxInstrumentConcentration,
		MinTradeSize:               DefaultMinTradeSize,
		StartingCash:               DefaultStartingCash,
		Search:                     SearchOptions{Size: DefaultSearchSize, Index: DefaultIndex},
	}
}

func (o Options) withDefaults() Options {
	if o.MaxInstrumentConcentration <= 0 {
		o.MaxInstrumentConcentration = DefaultMaxInstrumentConcentration
	}
	if o.MinTradeSize <= 0 {
		o.MinTradeSize = DefaultMinTradeSize
	}
	if o.StartingCash == 0 {
		o.StartingCash = DefaultStartingCash
	}
	o.Search = o.Search.withDefaults()
	return o
}

// BasicOptimization holds the upstream clients used by a search-driven optimization
type BasicOptimization struct {
	optimizer OptimizerAPI
	assets    flatten.AssetsAPI
	analyzer  flatten.AnalyzerAPI
	searcher  Searcher
}

// New wires the facade from already constructed clients. searcher may be nil,
// in which case searches fail with models.ErrPrecondition.
func New(optimizer OptimizerAPI, assets flatten.AssetsAPI, analyzer flatten.AnalyzerAPI, searcher Searcher) *BasicOptimization {
	return &BasicOptimization{
		optimizer: optimizer,
		assets:    assets,
		analyzer:  analyzer,
		searcher:  searcher,
	}
}

// NewFromEnv builds the search client from the credentials in dotenvPath
func NewFromEnv(dotenvPath string, optimizer OptimizerAPI, assets flatten.AssetsAPI, analyzer flatten.AnalyzerAPI) (*BasicOptimization, error) {
	searcher, err := search.NewFromEnv(dotenvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	return New(optimizer, assets, analyzer, searcher), nil
}

// RunSearch runs query against the asset index and returns the raw response
func (b *BasicOptimization) RunSearch(ctx context.Context, query map[string]any, opts SearchOptions) (map[string]any, error) {
	if b.searcher == nil {
		return nil, fmt.Errorf("%w: search client has to be initialized", models.ErrPrecondition)
	}

	opts = opts.withDefaults()
	response, err := b.searcher.Search(ctx, opts.Index, opts.Size, query)
	if err != nil {
		return nil, err
	}

	logger.Info("Search on %s returned %d total hits", opts.Index, search.TotalHits(response))
	return response, nil
}

// BuildRequest assembles the optimizer request for the hits of a search response
func BuildRequest(searchResponse map[string]any, opts Options) (models.OptimizePortfolioRequest, error) {
	opts = opts.withDefaults()

	whitelist, err := portfolio.CreateWhitelistFromSearch(searchResponse)
	if err != nil {
		return models.OptimizePortfolioRequest{}, fmt.Errorf("failed to build whitelist: %w", err)
	}

	cash, err := portfolio.CreateCashPortfolio(opts.StartingCash)
	if err != nil {
		return models.OptimizePortfolioRequest{}, err
	}

	return models.OptimizePortfolioRequest{
		Portfolio:   cash,
		Whitelist:   whitelist,
		Objectives:  portfolio.MaximizeYield(DefaultYieldObjectiveWeight),
		Constraints: portfolio.BasicConstraints(opts.MaxInstrumentConcentration, opts.MinTradeSize),
	}, nil
}

// RunOptimizationOnSearch searches, optimizes a cash portfolio over the hits and
// returns the summary table of the optimized portfolio
func (b *BasicOptimization) RunOptimizationOnSearch(ctx context.Context, query map[string]any, opts Options) (table.Table, error) {
	opts = opts.withDefaults()

	response, err := b.RunSearch(ctx, query, opts.Search)
	if err != nil {
		return table.Table{}, err
	}

	request, err := BuildRequest(response, opts)
	if err != nil {
		return table.Table{}, err
	}
	logger.Debug("Built request for portfolio %s with %d whitelisted assets", request.Portfolio.ID, len(request.Whitelist))

	optimized, err := b.optimizer.OptimizePortfolio(ctx, request)
	if err != nil {
		return table.Table{}, err
	}
	if optimized == nil {
		return table.Table{}, fmt.Errorf("%w: optimizer returned no portfolio", models.ErrRemoteCall)
	}

	return flatten.CreateSummaryTable(ctx, optimized.Portfolio, b.assets, b.analyzer)
}

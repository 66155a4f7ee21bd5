package optimization

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/rover-sync/internal/flatten"
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/rover"
	"github.com/kelsos/rover-sync/internal/search"
)

var (
	_ OptimizerAPI = (*rover.OptimizerService)(nil)
	_ Searcher     = (*search.Client)(nil)
)

type fakeSearcher struct {
	response map[string]any
	err      error
	index    string
	size     int
	calls    int
}

func (f *fakeSearcher) Search(_ context.Context, index string, size int, _ map[string]any) (map[string]any, error) {
	f.calls++
	f.index = index
	f.size = size
	return f.response, f.err
}

type fakeOptimizer struct {
	request models.OptimizePortfolioRequest
	err     error
}

func (f *fakeOptimizer) OptimizePortfolio(_ context.Context, request models.OptimizePortfolioRequest) (*models.OptimizePortfolioResponse, error) {
	f.request = request
	if f.err != nil {
		return nil, f.err
	}

	// spend half the cash on the first whitelisted asset
	cash := request.Portfolio.Positions[0]
	cash.Quantity /= 2
	return &models.OptimizePortfolioResponse{Portfolio: models.Portfolio{
		ID: request.Portfolio.ID,
		Positions: []models.Position{
			cash,
			{ID: "p1", PortfolioID: request.Portfolio.ID, AssetID: request.Whitelist[0].AssetID, Quantity: 500},
		},
	}}, nil
}

type fakeAssets struct{}

func (fakeAssets) GetAssets(_ context.Context, request models.GetAssetsRequest) (*models.GetAssetsResponse, error) {
	yield := 4.1
	assets := make([]models.Asset, 0, len(request.AssetIDs))
	for _, id := range request.AssetIDs {
		assets = append(assets, models.Asset{
			ID:          id,
			Description: "Bond " + id,
			Identifiers: &models.Identifiers{CUSIP: "CUSIP-" + id},
			Analytics:   &models.Analytics{Yield: &yield},
		})
	}
	return &models.GetAssetsResponse{Assets: assets}, nil
}

type fakeAnalyzer struct{}

func (fakeAnalyzer) AnalyzePortfolio(_ context.Context, request models.AnalyzePortfolioRequest) (*models.AnalyzePortfolioResponse, error) {
	weights := make([]models.PositionWeight, 0, len(request.Portfolio.Positions))
	for _, position := range request.Portfolio.Positions {
		weights = append(weights, models.PositionWeight{PositionID: position.ID, Weight: 0.5})
	}
	return &models.AnalyzePortfolioResponse{Analysis: models.Analysis{Weights: weights}}, nil
}

func searchResponse() map[string]any {
	return map[string]any{
		"hits": map[string]any{
			"total": map[string]any{"value": 2.0},
			"hits": []any{
				map[string]any{"_id": "a1", "_source": map[string]any{"id": "a1"}},
				map[string]any{"_id": "a2", "_source": map[string]any{"id": "a2"}},
			},
		},
	}
}

func TestRunSearch_RequiresSearcher(t *testing.T) {
	optimizer := &fakeOptimizer{}
	b := New(optimizer, fakeAssets{}, fakeAnalyzer{}, nil)

	_, err := b.RunSearch(context.Background(), map[string]any{}, SearchOptions{})
	assert.ErrorIs(t, err, models.ErrPrecondition)

	_, err = b.RunOptimizationOnSearch(context.Background(), map[string]any{}, Options{})
	assert.ErrorIs(t, err, models.ErrPrecondition)
	assert.Empty(t, optimizer.request.Whitelist)
}

func TestRunSearch_Defaults(t *testing.T) {
	searcher := &fakeSearcher{response: searchResponse()}
	b := New(&fakeOptimizer{}, fakeAssets{}, fakeAnalyzer{}, searcher)

	response, err := b.RunSearch(context.Background(), map[string]any{"match_all": map[string]any{}}, SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, "rover-universe-assets", searcher.index)
	assert.Equal(t, 1000, searcher.size)
	assert.Equal(t, 2, search.TotalHits(response))
}

func TestRunSearch_PropagatesErrors(t *testing.T) {
	failure := errors.Join(models.ErrRemoteCall, errors.New("cluster unavailable"))
	b := New(&fakeOptimizer{}, fakeAssets{}, fakeAnalyzer{}, &fakeSearcher{err: failure})

	_, err := b.RunSearch(context.Background(), nil, SearchOptions{Index: "other", Size: 5})
	assert.ErrorIs(t, err, models.ErrRemoteCall)
}

func TestBuildRequest(t *testing.T) {
	request, err := BuildRequest(searchResponse(), Options{MaxInstrumentConcentration: 0.05, StartingCash: 2500})
	require.NoError(t, err)

	assert.Equal(t, []models.WhitelistItem{{AssetID: "a1"}, {AssetID: "a2"}}, request.Whitelist)
	require.Len(t, request.Portfolio.Positions, 1)
	assert.Equal(t, 2500.0, request.Portfolio.Positions[0].Quantity)
	assert.Equal(t, 0.05, request.Constraints.InstrumentConcentration[0].MaximumWeight)
	assert.Equal(t, DefaultMinTradeSize, request.Constraints.MinimumTradeSize[0].MinimumWeight)
	assert.Equal(t, models.OperatorNotEquals, request.Constraints.MinimumTradeSize[0].Filters.Text[0].Operator)
	assert.Equal(t, 1.0, request.Objectives.MaximizeYield.Weight)
}

func TestBuildRequest_Errors(t *testing.T) {
	_, err := BuildRequest(map[string]any{}, DefaultOptions())
	assert.Error(t, err)

	_, err = BuildRequest(searchResponse(), Options{StartingCash: -5})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestRunOptimizationOnSearch(t *testing.T) {
	optimizer := &fakeOptimizer{}
	b := New(optimizer, fakeAssets{}, fakeAnalyzer{}, &fakeSearcher{response: searchResponse()})

	summary, err := b.RunOptimizationOnSearch(context.Background(), map[string]any{"match_all": map[string]any{}}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 100000.0, optimizer.request.Portfolio.Positions[0].Quantity)
	assert.Equal(t, flatten.SummaryColumns, summary.Columns)
	require.Equal(t, 2, summary.Len())
	assert.Equal(t, []any{"USD", "a1"}, summary.Column("asset_id"))
	assert.Equal(t, []any{nil, "CUSIP-a1"}, summary.Column("cusip"))
	assert.Equal(t, []any{50000.0, 500.0}, summary.Column("quantity"))
	assert.Equal(t, []any{0.5, 0.5}, summary.Column("weight"))
}

func TestRunOptimizationOnSearch_OptimizerFailure(t *testing.T) {
	failure := errors.Join(models.ErrRemoteCall, errors.New("infeasible"))
	b := New(&fakeOptimizer{err: failure}, fakeAssets{}, fakeAnalyzer{}, &fakeSearcher{response: searchResponse()})

	_, err := b.RunOptimizationOnSearch(context.Background(), map[string]any{}, Options{})
	assert.ErrorIs(t, err, models.ErrRemoteCall)
}

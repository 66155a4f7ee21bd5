package flatten

import (
	"context"
	"fmt"

	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/table"
)

const cashAssetID = "USD"

// SummaryColumns is the column set of the optimization summary
var SummaryColumns = []string{ColAssetID, ColCUSIP, ColDescription, ColQuantity, ColYield, ColWeight}

type AssetsAPI interface {
	GetAssets(ctx context.Context, request models.GetAssetsRequest) (*models.GetAssetsResponse, error)
}

type AnalyzerAPI interface {
	AnalyzePortfolio(ctx context.Context, request models.AnalyzePortfolioRequest) (*models.AnalyzePortfolioResponse, error)
}

// CreateSummaryTable joins a portfolio's positions with asset details from the
// universe service and position weights from the analyzer.
func CreateSummaryTable(ctx context.Context, portfolio models.Portfolio, assets AssetsAPI, analyzer AnalyzerAPI) (table.Table, error) {
	positions := PortfolioToTable(portfolio)

	assetTable, err := summaryAssets(ctx, portfolio, assets)
	if err != nil {
		return table.Table{}, err
	}
	merged := positions.LeftJoin(assetTable, ColAssetID, ColAssetID)

	analysis, err := analyzer.AnalyzePortfolio(ctx, models.AnalyzePortfolioRequest{Portfolio: portfolio})
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to analyze portfolio %s: %w", portfolio.ID, err)
	}
	if analysis == nil {
		return table.Table{}, fmt.Errorf("%w: analyzer returned no analysis for portfolio %s", models.ErrRemoteCall, portfolio.ID)
	}

	weights := WeightsToTable(analysis.Analysis.Weights)
	final := merged.LeftJoin(weights, ColID, ColPositionID)

	logger.Debug("Summary for portfolio %s has %d rows", portfolio.ID, final.Len())
	return final.Select(SummaryColumns...), nil
}

func summaryAssets(ctx context.Context, portfolio models.Portfolio, assets AssetsAPI) (table.Table, error) {
	t := table.New(ColAssetID, ColCUSIP, ColDescription, ColYield)

	var assetIDs []string
	for _, position := range portfolio.Positions {
		if position.AssetID != cashAssetID {
			assetIDs = append(assetIDs, position.AssetID)
		}
	}
	if len(assetIDs) == 0 {
		return t, nil
	}

	response, err := assets.GetAssets(ctx, models.GetAssetsRequest{AssetIDs: assetIDs})
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to get %d assets: %w", len(assetIDs), err)
	}
	if response == nil {
		return t, nil
	}

	for _, asset := range response.Assets {
		record := table.Record{
			ColAssetID:     asset.ID,
			ColDescription: asset.Description,
			ColYield:       nil,
		}
		if asset.Identifiers != nil {
			record[ColCUSIP] = asset.Identifiers.CUSIP
		}
		if asset.Analytics != nil {
			record[ColYield] = floatOrNil(asset.Analytics.Yield)
		}
		t.Append(record)
	}

	return t, nil
}

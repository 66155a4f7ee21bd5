// Package flatten reshapes Rover API responses into tables.
package flatten

import (
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/table"
)

// Column names shared by the flattened tables
const (
	ColID              = "id"
	ColPortfolioID     = "portfolio_id"
	ColAssetID         = "asset_id"
	ColQuantity        = "quantity"
	ColCUSIP           = "cusip"
	ColISIN            = "isin"
	ColDescription     = "description"
	ColRating          = "rating"
	ColYield           = "yield"
	ColDuration        = "duration"
	ColPrice           = "price"
	ColYearsToMaturity = "years_to_maturity"
	ColUseOfProceeds   = "use_of_proceeds"
	ColDebtServiceType = "debt_service_type"
	ColSector          = "sector"
	ColPositionID      = "position_id"
	ColWeight          = "weight"
	ColSourceName      = "source_name"
	ColExternalID      = "external_id"
)

var assetInfoColumns = []string{
	ColAssetID, ColCUSIP, ColISIN, ColDescription, ColRating, ColYield, ColDuration,
	ColPrice, ColYearsToMaturity, ColUseOfProceeds, ColDebtServiceType, ColSector,
}

// PortfolioToTable returns one row per position
func PortfolioToTable(portfolio models.Portfolio) table.Table {
	t := table.New(ColID, ColPortfolioID, ColAssetID, ColQuantity)
	for _, position := range portfolio.Positions {
		t.Append(table.Record{
			ColID:          position.ID,
			ColPortfolioID: position.PortfolioID,
			ColAssetID:     position.AssetID,
			ColQuantity:    position.Quantity,
		})
	}
	return t
}

// ExtractAssetInfo flattens the descriptive and analytic fields of an asset.
// Assets without identifiers produce an empty record.
func ExtractAssetInfo(asset models.Asset) table.Record {
	info := table.Record{}
	if asset.Identifiers == nil {
		return info
	}

	info[ColAssetID] = asset.ID
	info[ColCUSIP] = asset.Identifiers.CUSIP
	info[ColISIN] = asset.Identifiers.ISIN
	info[ColDescription] = asset.Name
	info[ColRating] = asset.Rating
	info[ColPrice] = floatOrNil(asset.Price)

	info[ColYield] = nil
	info[ColDuration] = nil
	info[ColYearsToMaturity] = nil
	if a := asset.Analytics; a != nil {
		info[ColYield] = floatOrNil(a.Yield)
		info[ColDuration] = floatOrNil(a.Duration)
		info[ColYearsToMaturity] = floatOrNil(a.YearsToMaturity)
	}

	info[ColUseOfProceeds] = nil
	info[ColDebtServiceType] = nil
	info[ColSector] = nil
	if b := asset.Bond; b != nil {
		info[ColUseOfProceeds] = b.UseOfProceeds
		info[ColDebtServiceType] = b.DebtServiceType
		if b.Issuer != nil {
			info[ColSector] = b.Issuer.Sector
		}
	}

	return info
}

// AssetsToTable flattens assets with ExtractAssetInfo, dropping those without identifiers
func AssetsToTable(assets []models.Asset) table.Table {
	t := table.New(assetInfoColumns...)
	for _, asset := range assets {
		info := ExtractAssetInfo(asset)
		if len(info) == 0 {
			continue
		}
		t.Append(info)
	}
	return t
}

// MappingsToTable lists external id to asset id mappings
func MappingsToTable(mappings []models.ExternalIDMapping) table.Table {
	t := table.New(ColSourceName, ColExternalID, ColAssetID)
	for _, mapping := range mappings {
		t.Append(table.Record{
			ColSourceName: mapping.SourceName,
			ColExternalID: mapping.ExternalID,
			ColAssetID:    mapping.AssetID,
		})
	}
	return t
}

// WeightsToTable lists the analyzer weight of each position
func WeightsToTable(weights []models.PositionWeight) table.Table {
	t := table.New(ColPositionID, ColWeight)
	for _, weight := range weights {
		t.Append(table.Record{
			ColPositionID: weight.PositionID,
			ColWeight:     weight.Weight,
		})
	}
	return t
}

// ParseOffers keeps the OFFER entries of every CUSIP, in response order
func ParseOffers(response models.IceDataResponse) table.Table {
	var offers []table.Record
	for _, mapping := range response.CusipIceMappings {
		for _, entry := range mapping.IceData {
			if entry.EntryType() == models.EntryTypeOffer {
				offers = append(offers, table.Record(entry))
			}
		}
	}
	return table.FromRecords(offers)
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

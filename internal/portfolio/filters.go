package portfolio

import "github.com/kelsos/rover-sync/internal/models"

const filterKey = "id"

// TextFilter builds a filter on the position id field
func TextFilter(operator models.TextOperator, value string) models.TextFilter {
	return models.TextFilter{
		Key:      filterKey,
		Operator: operator,
		Value:    value,
	}
}

func AssetIDTextFilter(assetID string) models.TextFilter {
	return TextFilter(models.OperatorEquals, assetID)
}

// NonUSDFilters matches every position except cash.
// A new value is returned on each call so callers never share slices.
func NonUSDFilters() models.Filters {
	return models.Filters{Text: []models.TextFilter{TextFilter(models.OperatorNotEquals, CashAssetID)}}
}

// USDFilters matches only the cash position
func USDFilters() models.Filters {
	return models.Filters{Text: []models.TextFilter{TextFilter(models.OperatorEquals, CashAssetID)}}
}

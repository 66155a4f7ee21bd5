package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/rover-sync/internal/models"
)

func TestCreateWhitelist_KeepsOrderAndDuplicates(t *testing.T) {
	whitelist := CreateWhitelist([]string{"b", "a", "b"})

	assert.Equal(t, []models.WhitelistItem{{AssetID: "b"}, {AssetID: "a"}, {AssetID: "b"}}, whitelist)
	assert.Empty(t, CreateWhitelist(nil))
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestCreateWhitelistFromSearch(t *testing.T) {
	response := decode(t, `{
		"took": 3,
		"hits": {
			"total": {"value": 3},
			"hits": [
				{"_id": "doc-1", "_source": {"id": "asset-1", "cusip": "123"}},
				{"_id": "asset-2", "_source": {"cusip": "456"}},
				{"_id": "doc-3", "_source": {"id": "asset-3"}}
			]
		}
	}`)

	whitelist, err := CreateWhitelistFromSearch(response)
	require.NoError(t, err)

	assert.Equal(t, []models.WhitelistItem{
		{AssetID: "asset-1"},
		{AssetID: "asset-2"},
		{AssetID: "asset-3"},
	}, whitelist)
}

func TestCreateWhitelistFromSearch_EmptyHits(t *testing.T) {
	whitelist, err := CreateWhitelistFromSearch(decode(t, `{"hits": {"hits": []}}`))
	require.NoError(t, err)
	assert.Empty(t, whitelist)
}

func TestCreateWhitelistFromSearch_Errors(t *testing.T) {
	_, err := CreateWhitelistFromSearch(decode(t, `{"took": 1}`))
	assert.Error(t, err)

	_, err = CreateWhitelistFromSearch(decode(t, `{"hits": {"hits": [{"_source": {}}]}}`))
	assert.Error(t, err)
}

func TestFilters(t *testing.T) {
	assert.Equal(t, models.Filters{Text: []models.TextFilter{{Key: "id", Operator: "Does not equal", Value: "USD"}}}, NonUSDFilters())
	assert.Equal(t, models.Filters{Text: []models.TextFilter{{Key: "id", Operator: "Equals", Value: "USD"}}}, USDFilters())
	assert.Equal(t, models.TextFilter{Key: "id", Operator: "Equals", Value: "asset-9"}, AssetIDTextFilter("asset-9"))

	// values are independent
	first := NonUSDFilters()
	first.Text[0].Value = "EUR"
	assert.Equal(t, "USD", NonUSDFilters().Text[0].Value)
}

func TestBasicConstraintsAndObjectives(t *testing.T) {
	constraints := BasicConstraints(0.1, 0.01)

	require.Len(t, constraints.InstrumentConcentration, 1)
	require.Len(t, constraints.MinimumTradeSize, 1)
	assert.Equal(t, 0.1, constraints.InstrumentConcentration[0].MaximumWeight)
	assert.Equal(t, 0.01, constraints.MinimumTradeSize[0].MinimumWeight)
	assert.Equal(t, NonUSDFilters(), constraints.InstrumentConcentration[0].Filters)
	assert.Equal(t, NonUSDFilters(), constraints.MinimumTradeSize[0].Filters)

	objectives := MaximizeYield(1)
	require.NotNil(t, objectives.MaximizeYield)
	assert.Equal(t, 1.0, objectives.MaximizeYield.Weight)
}

package portfolio

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	"github.com/kelsos/rover-sync/internal/models"
)

const hitsPath = "$.hits.hits"

// CreateWhitelist returns one item per asset id, keeping order and duplicates
func CreateWhitelist(assetIDs []string) []models.WhitelistItem {
	whitelist := make([]models.WhitelistItem, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		whitelist = append(whitelist, models.WhitelistItem{AssetID: assetID})
	}
	return whitelist
}

// CreateWhitelistFromSearch extracts asset ids from a raw search response.
// Each hit contributes its _source.id, or its document _id when the source has none.
func CreateWhitelistFromSearch(response map[string]any) ([]models.WhitelistItem, error) {
	ids, err := SearchHitIDs(response)
	if err != nil {
		return nil, err
	}
	return CreateWhitelist(ids), nil
}

// SearchHitIDs lists the asset id of every hit in result order
func SearchHitIDs(response map[string]any) ([]string, error) {
	raw, err := jsonpath.Get(hitsPath, map[string]interface{}(response))
	if err != nil {
		return nil, fmt.Errorf("search response has no hits list: %w", err)
	}

	hits, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("search response hits is %T, not a list", raw)
	}

	ids := make([]string, 0, len(hits))
	for i, hit := range hits {
		id, ok := hitID(hit)
		if !ok {
			return nil, fmt.Errorf("search hit %d has no asset id", i)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func hitID(hit any) (string, bool) {
	doc, ok := hit.(map[string]interface{})
	if !ok {
		return "", false
	}

	if source, ok := doc["_source"].(map[string]interface{}); ok {
		if id, ok := source["id"].(string); ok && id != "" {
			return id, true
		}
	}

	id, ok := doc["_id"].(string)
	return id, ok && id != ""
}

// Package rover wraps the Rover universe, optimizer, analyzer and ICE market
// data endpoints behind typed services.
package rover

import (
	"github.com/kelsos/rover-sync/internal/auth"
	"github.com/kelsos/rover-sync/internal/client"
	"github.com/kelsos/rover-sync/internal/config"
	"github.com/kelsos/rover-sync/internal/flatten"
)

// SourceCUSIP is the external id source name for CUSIP lookups
const SourceCUSIP = "cusip"

// Clients groups one service per upstream API, all sharing the same header
type Clients struct {
	Assets     *AssetsService
	Mappings   *ExternalIDMappingsService
	Optimizer  *OptimizerService
	Analyzer   *AnalyzerService
	MarketData *MarketDataService
}

// NewClients creates every service from the configured base URLs
func NewClients(cfg *config.Config, header auth.Header) *Clients {
	headers := header.ToMap()
	universe := client.NewAPIClient(cfg.UniverseURL, headers, cfg.HTTPTimeout)

	return &Clients{
		Assets:     NewAssetsService(universe),
		Mappings:   NewExternalIDMappingsService(universe),
		Optimizer:  NewOptimizerService(client.NewAPIClient(cfg.OptimizerURL, headers, cfg.HTTPTimeout)),
		Analyzer:   NewAnalyzerService(client.NewAPIClient(cfg.AnalyzerURL, headers, cfg.HTTPTimeout)),
		MarketData: NewMarketDataService(cfg.IceDataURL, headers, cfg.HTTPTimeout),
	}
}

var (
	_ flatten.AssetsAPI   = (*AssetsService)(nil)
	_ flatten.AnalyzerAPI = (*AnalyzerService)(nil)
)

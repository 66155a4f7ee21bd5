package models

type PortfolioStatus string

const (
	PortfolioStatusReady      PortfolioStatus = "READY"
	PortfolioStatusPending    PortfolioStatus = "PENDING"
	PortfolioStatusTerminated PortfolioStatus = "TERMINATED"
)

// Valid reports whether s is one of the statuses the optimizer accepts
func (s PortfolioStatus) Valid() bool {
	switch s {
	case PortfolioStatusReady, PortfolioStatusPending, PortfolioStatusTerminated:
		return true
	}
	return false
}

// Position is a holding of a single asset inside a portfolio
type Position struct {
	ID          string  `json:"id"`
	PortfolioID string  `json:"portfolioId"`
	AssetID     string  `json:"assetId"`
	Quantity    float64 `json:"quantity"`
}

// Portfolio is the optimizer and analyzer representation of a set of positions
type Portfolio struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"createdAt"`
	Currency  string          `json:"currency"`
	Status    PortfolioStatus `json:"status"`
	Name      string          `json:"name"`
	Positions []Position      `json:"positions"`
}

// WhitelistItem marks one asset as eligible for an optimization run
type WhitelistItem struct {
	AssetID string `json:"assetId"`
}

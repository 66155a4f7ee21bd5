package models

type Identifiers struct {
	CUSIP string `json:"cusip,omitempty"`
	ISIN  string `json:"isin,omitempty"`
}

type Analytics struct {
	Yield           *float64 `json:"yield,omitempty"`
	Duration        *float64 `json:"duration,omitempty"`
	YearsToMaturity *float64 `json:"yearsToMaturity,omitempty"`
}

type Issuer struct {
	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"`
}

type Bond struct {
	UseOfProceeds   string  `json:"useOfProceeds,omitempty"`
	DebtServiceType string  `json:"debtServiceType,omitempty"`
	Issuer          *Issuer `json:"issuer,omitempty"`
}

// Asset is an instrument from the universe service
type Asset struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Rating      string       `json:"rating,omitempty"`
	Price       *float64     `json:"price,omitempty"`
	Identifiers *Identifiers `json:"identifiers,omitempty"`
	Analytics   *Analytics   `json:"analytics,omitempty"`
	Bond        *Bond        `json:"bond,omitempty"`
}

type GetAssetsRequest struct {
	AssetIDs []string `json:"assetIds"`
}

type GetAssetsResponse struct {
	Assets []Asset `json:"assets"`
}

type GetAssetsByExternalIDRequest struct {
	ExternalIDs []string `json:"externalIds"`
}

type GetAssetsByExternalIDResponse struct {
	Assets []Asset `json:"assets"`
}

type GetExternalIDMappingsRequest struct {
	ExternalIDs []string `json:"externalIds"`
}

// ExternalIDMapping links an identifier from an outside source (e.g. a CUSIP) to an asset id
type ExternalIDMapping struct {
	SourceName string `json:"sourceName"`
	ExternalID string `json:"externalId"`
	AssetID    string `json:"assetId"`
}

type GetExternalIDMappingsResponse struct {
	Mappings []ExternalIDMapping `json:"mappings"`
}

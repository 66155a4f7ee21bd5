package models

type AnalyzePortfolioRequest struct {
	Portfolio Portfolio `json:"portfolio"`
}

// PositionWeight is the share of the portfolio value held by one position
type PositionWeight struct {
	PositionID string  `json:"positionId"`
	Weight     float64 `json:"weight"`
}

type Analysis struct {
	Weights []PositionWeight `json:"weights"`
}

type AnalyzePortfolioResponse struct {
	Analysis Analysis `json:"analysis"`
}

package models

type TextOperator string

const (
	OperatorEquals    TextOperator = "Equals"
	OperatorNotEquals TextOperator = "Does not equal"
)

// TextFilter scopes a constraint to positions whose field matches a literal value
type TextFilter struct {
	Key      string       `json:"key"`
	Operator TextOperator `json:"operator"`
	Value    string       `json:"value"`
}

type Filters struct {
	Text []TextFilter `json:"text,omitempty"`
}

type InstrumentConcentrationConstraint struct {
	Filters       Filters `json:"filters"`
	MaximumWeight float64 `json:"maximumWeight"`
}

type MinimumTradeSizeConstraint struct {
	Filters       Filters `json:"filters"`
	MinimumWeight float64 `json:"minimumWeight"`
}

type Constraints struct {
	InstrumentConcentration []InstrumentConcentrationConstraint `json:"instrumentConcentration,omitempty"`
	MinimumTradeSize        []MinimumTradeSizeConstraint        `json:"minimumTradeSize,omitempty"`
}

type MaximizeYieldObjective struct {
	Weight float64 `json:"weight"`
}

type Objectives struct {
	MaximizeYield *MaximizeYieldObjective `json:"maximizeYield,omitempty"`
}

// OptimizePortfolioRequest is the payload sent to the optimizer service
type OptimizePortfolioRequest struct {
	Portfolio   Portfolio       `json:"portfolio"`
	Whitelist   []WhitelistItem `json:"whitelist"`
	Objectives  Objectives      `json:"objectives"`
	Constraints Constraints     `json:"constraints"`
}

type OptimizePortfolioResponse struct {
	Portfolio Portfolio `json:"portfolio"`
}

package portfolio

import "github.com/kelsos/rover-sync/internal/models"

// BasicConstraints caps the weight of every non-cash instrument and sets a minimum trade size
func BasicConstraints(maxInstrumentConcentration, minTradeSize float64) models.Constraints {
	return models.Constraints{
		InstrumentConcentration: []models.InstrumentConcentrationConstraint{
			{Filters: NonUSDFilters(), MaximumWeight: maxInstrumentConcentration},
		},
		MinimumTradeSize: []models.MinimumTradeSizeConstraint{
			{Filters: NonUSDFilters(), MinimumWeight: minTradeSize},
		},
	}
}

func MaximizeYield(weight float64) models.Objectives {
	return models.Objectives{
		MaximizeYield: &models.MaximizeYieldObjective{Weight: weight},
	}
}

package rover

import (
	"context"
	"fmt"

	"github.com/kelsos/rover-sync/internal/client"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
)

type OptimizerService struct {
	client *client.APIClient
}

func NewOptimizerService(client *client.APIClient) *OptimizerService {
	return &OptimizerService{
		client: client,
	}
}

// OptimizePortfolio submits a portfolio, whitelist, objectives and constraints to the optimizer
func (s *OptimizerService) OptimizePortfolio(ctx context.Context, request models.OptimizePortfolioRequest) (*models.OptimizePortfolioResponse, error) {
	logger.Info("Optimizing portfolio %s over %d whitelisted assets", request.Portfolio.ID, len(request.Whitelist))

	var response models.OptimizePortfolioResponse
	if err := s.client.Post(ctx, "/portfolios/optimize", request, &response); err != nil {
		return nil, fmt.Errorf("failed to optimize portfolio %s: %w", request.Portfolio.ID, err)
	}

	logger.Info("Optimizer returned %d positions", len(response.Portfolio.Positions))
	return &response, nil
}

type AnalyzerService struct {
	client *client.APIClient
}

func NewAnalyzerService(client *client.APIClient) *AnalyzerService {
	return &AnalyzerService{
		client: client,
	}
}

// AnalyzePortfolio asks the analyzer for position weights and other analytics
func (s *AnalyzerService) AnalyzePortfolio(ctx context.Context, request models.AnalyzePortfolioRequest) (*models.AnalyzePortfolioResponse, error) {
	var response models.AnalyzePortfolioResponse
	if err := s.client.Post(ctx, "/portfolios/analyze", request, &response); err != nil {
		return nil, fmt.Errorf("failed to analyze portfolio %s: %w", request.Portfolio.ID, err)
	}

	return &response, nil
}

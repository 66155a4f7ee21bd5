package rover

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kelsos/rover-sync/internal/client"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
)

// AssetsService handles the universe assets endpoints
type AssetsService struct {
	client *client.APIClient
}

// NewAssetsService creates a new assets service
func NewAssetsService(client *client.APIClient) *AssetsService {
	return &AssetsService{
		client: client,
	}
}

// GetAssets fetches assets by their Rover asset ids
func (s *AssetsService) GetAssets(ctx context.Context, request models.GetAssetsRequest) (*models.GetAssetsResponse, error) {
	var response models.GetAssetsResponse
	if err := s.client.Post(ctx, "/assets", request, &response); err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}

	logger.Debug("Fetched %d of %d requested assets", len(response.Assets), len(request.AssetIDs))
	return &response, nil
}

// GetAssetsByExternalID fetches assets using identifiers from an outside source
func (s *AssetsService) GetAssetsByExternalID(ctx context.Context, sourceName string, externalIDs []string) (*models.GetAssetsByExternalIDResponse, error) {
	request := models.GetAssetsByExternalIDRequest{ExternalIDs: externalIDs}
	endpoint := fmt.Sprintf("/assets/external-ids/%s", url.PathEscape(sourceName))

	var response models.GetAssetsByExternalIDResponse
	if err := s.client.Post(ctx, endpoint, request, &response); err != nil {
		return nil, fmt.Errorf("failed to get assets by %s: %w", sourceName, err)
	}

	return &response, nil
}

// GetAssetsFromCusips retrieves the assets for a list of CUSIPs
func (s *AssetsService) GetAssetsFromCusips(ctx context.Context, cusips []string) (*models.GetAssetsByExternalIDResponse, error) {
	return s.GetAssetsByExternalID(ctx, SourceCUSIP, cusips)
}

// ExternalIDMappingsService handles the external id mapping endpoint
type ExternalIDMappingsService struct {
	client *client.APIClient
}

// NewExternalIDMappingsService creates a new mapping service
func NewExternalIDMappingsService(client *client.APIClient) *ExternalIDMappingsService {
	return &ExternalIDMappingsService{
		client: client,
	}
}

// GetExternalIDMappings maps outside identifiers to Rover asset ids
func (s *ExternalIDMappingsService) GetExternalIDMappings(ctx context.Context, sourceName string, externalIDs []string) (*models.GetExternalIDMappingsResponse, error) {
	request := models.GetExternalIDMappingsRequest{ExternalIDs: externalIDs}
	endpoint := fmt.Sprintf("/external-id-mappings/%s", url.PathEscape(sourceName))

	var response models.GetExternalIDMappingsResponse
	if err := s.client.Post(ctx, endpoint, request, &response); err != nil {
		return nil, fmt.Errorf("failed to get %s mappings: %w", sourceName, err)
	}

	return &response, nil
}

// GetCusipAssetIDMappings maps CUSIPs to Rover asset ids
func (s *ExternalIDMappingsService) GetCusipAssetIDMappings(ctx context.Context, cusips []string) (*models.GetExternalIDMappingsResponse, error) {
	return s.GetExternalIDMappings(ctx, SourceCUSIP, cusips)
}

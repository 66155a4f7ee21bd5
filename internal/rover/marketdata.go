package rover

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kelsos/rover-sync/internal/flatten"
	"github.com/kelsos/rover-sync/internal/logger"
	"github.com/kelsos/rover-sync/internal/models"
	"github.com/kelsos/rover-sync/internal/table"
	"github.com/kelsos/rover-sync/internal/utils"
)

// MarketDataService posts CUSIPs to the ICE data endpoint
type MarketDataService struct {
	url     string
	headers map[string]string
	timeout time.Duration
}

func NewMarketDataService(url string, headers map[string]string, timeout time.Duration) *MarketDataService {
	return &MarketDataService{
		url:     url,
		headers: headers,
		timeout: timeout,
	}
}

// GetIceData returns the raw quote entries for every CUSIP
func (s *MarketDataService) GetIceData(ctx context.Context, cusips []string) (*models.IceDataResponse, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	response, err := utils.FetchWithValidation[models.IceDataResponse](ctx, s.url, http.MethodPost, s.headers, models.IceDataRequest{Cusips: cusips})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ICE data for %d cusips: %w", len(cusips), err)
	}

	return response, nil
}

// GetLiveOffers returns one row per live offer across the given CUSIPs
func (s *MarketDataService) GetLiveOffers(ctx context.Context, cusips []string) (table.Table, error) {
	response, err := s.GetIceData(ctx, cusips)
	if err != nil {
		return table.Table{}, err
	}

	offers := flatten.ParseOffers(*response)
	logger.Info("Found %d live offers for %d cusips", offers.Len(), len(cusips))
	return offers, nil
}

// Package portfolio builds the request payloads sent to the optimizer:
// cash portfolios, whitelists, filters, constraints and objectives.
package portfolio

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kelsos/rover-sync/internal/models"
)

const (
	CashAssetID          = "USD"
	DefaultCurrency      = "USD"
	DefaultPortfolioName = "Random"
	DefaultStatus        = models.PortfolioStatusReady

	// CreatedAtLayout is ISO-8601 with microseconds and a numeric zone offset
	CreatedAtLayout = "2006-01-02T15:04:05.000000-0700"
)

// NewID returns a time-based UUID, falling back to a random one
func NewID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// CreateCashPosition creates a pure cash position. An empty portfolioID gets a fresh one.
func CreateCashPosition(amount int64, portfolioID string) (models.Position, error) {
	if amount <= 0 {
		return models.Position{}, fmt.Errorf("%w: cash amount must be positive, got %d", models.ErrInvalidAmount, amount)
	}

	if portfolioID == "" {
		portfolioID = NewID()
	}

	return models.Position{
		ID:          CashAssetID,
		PortfolioID: portfolioID,
		AssetID:     CashAssetID,
		Quantity:    float64(amount),
	}, nil
}

type cashPortfolioOptions struct {
	id        string
	createdAt string
	currency  string
	status    models.PortfolioStatus
	name      string
	now       func() time.Time
}

type CashPortfolioOption func(*cashPortfolioOptions)

func WithID(id string) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.id = id }
}

func WithCreatedAt(createdAt string) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.createdAt = createdAt }
}

func WithCurrency(currency string) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.currency = currency }
}

func WithStatus(status models.PortfolioStatus) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.status = status }
}

func WithName(name string) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.name = name }
}

// WithClock overrides the time source used for the default creation timestamp
func WithClock(now func() time.Time) CashPortfolioOption {
	return func(o *cashPortfolioOptions) { o.now = now }
}

// CreateCashPortfolio creates a portfolio holding a single cash position of amount
func CreateCashPortfolio(amount int64, opts ...CashPortfolioOption) (models.Portfolio, error) {
	options := cashPortfolioOptions{
		currency: DefaultCurrency,
		status:   DefaultStatus,
		name:     DefaultPortfolioName,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if !options.status.Valid() {
		return models.Portfolio{}, fmt.Errorf("unknown portfolio status %q", options.status)
	}

	if options.id == "" {
		options.id = NewID()
	}

	if options.createdAt == "" {
		options.createdAt = options.now().Format(CreatedAtLayout)
	}

	cash, err := CreateCashPosition(amount, options.id)
	if err != nil {
		return models.Portfolio{}, err
	}

	return models.Portfolio{
		ID:        options.id,
		CreatedAt: options.createdAt,
		Currency:  options.currency,
		Status:    options.status,
		Name:      options.name,
		Positions: []models.Position{cash},
	}, nil
}

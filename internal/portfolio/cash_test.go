package portfolio

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/rover-sync/internal/models"
)

func TestCreateCashPosition_RejectsNonPositive(t *testing.T) {
	for _, amount := range []int64{0, -1, -100000} {
		_, err := CreateCashPosition(amount, "p1")
		assert.ErrorIs(t, err, models.ErrInvalidAmount, "amount %d", amount)
	}
}

func TestCreateCashPosition(t *testing.T) {
	for _, amount := range []int64{1, 250, 100000} {
		position, err := CreateCashPosition(amount, "p1")
		require.NoError(t, err)

		assert.Equal(t, "USD", position.ID)
		assert.Equal(t, "USD", position.AssetID)
		assert.Equal(t, "p1", position.PortfolioID)
		assert.Equal(t, float64(amount), position.Quantity)
	}
}

func TestCreateCashPosition_GeneratesPortfolioID(t *testing.T) {
	first, err := CreateCashPosition(10, "")
	require.NoError(t, err)
	second, err := CreateCashPosition(10, "")
	require.NoError(t, err)

	_, err = uuid.Parse(first.PortfolioID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.PortfolioID, second.PortfolioID)
}

func TestCreateCashPortfolio_Defaults(t *testing.T) {
	portfolio, err := CreateCashPortfolio(100000)
	require.NoError(t, err)

	assert.Equal(t, "USD", portfolio.Currency)
	assert.Equal(t, models.PortfolioStatusReady, portfolio.Status)
	assert.Equal(t, "Random", portfolio.Name)
	require.Len(t, portfolio.Positions, 1)
	assert.Equal(t, models.Position{
		ID:          "USD",
		PortfolioID: portfolio.ID,
		AssetID:     "USD",
		Quantity:    100000,
	}, portfolio.Positions[0])

	_, err = time.Parse(CreatedAtLayout, portfolio.CreatedAt)
	assert.NoError(t, err)
}

func TestCreateCashPortfolio_Options(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 123456000, time.UTC)
	}

	portfolio, err := CreateCashPortfolio(500,
		WithID("port-1"),
		WithCurrency("EUR"),
		WithStatus(models.PortfolioStatusPending),
		WithName("Muni ladder"),
		WithClock(clock),
	)
	require.NoError(t, err)

	assert.Equal(t, "port-1", portfolio.ID)
	assert.Equal(t, "2024-03-01T12:30:00.123456+0000", portfolio.CreatedAt)
	assert.Equal(t, "EUR", portfolio.Currency)
	assert.Equal(t, models.PortfolioStatusPending, portfolio.Status)
	assert.Equal(t, "Muni ladder", portfolio.Name)
	assert.Equal(t, "port-1", portfolio.Positions[0].PortfolioID)
}

func TestCreateCashPortfolio_ExplicitCreatedAt(t *testing.T) {
	portfolio, err := CreateCashPortfolio(1, WithCreatedAt("2023-01-01T00:00:00.000000+0000"))
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01T00:00:00.000000+0000", portfolio.CreatedAt)
}

func TestCreateCashPortfolio_Errors(t *testing.T) {
	_, err := CreateCashPortfolio(0)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	_, err = CreateCashPortfolio(10, WithStatus("ARCHIVED"))
	assert.Error(t, err)
}

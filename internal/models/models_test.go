package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioStatusValid(t *testing.T) {
	for _, status := range []PortfolioStatus{PortfolioStatusReady, PortfolioStatusPending, PortfolioStatusTerminated} {
		assert.True(t, status.Valid(), status)
	}
	assert.False(t, PortfolioStatus("ready").Valid())
	assert.False(t, PortfolioStatus("").Valid())
}

func TestIceEntryType(t *testing.T) {
	assert.Equal(t, "OFFER", IceEntry{"entryType": "OFFER"}.EntryType())
	assert.Equal(t, "", IceEntry{"entryType": 3}.EntryType())
	assert.Equal(t, "", IceEntry{}.EntryType())
}

func TestPortfolioWireFormat(t *testing.T) {
	portfolio := Portfolio{
		ID:        "p",
		Status:    PortfolioStatusReady,
		Positions: []Position{{ID: "USD", PortfolioID: "p", AssetID: "USD", Quantity: 100000}},
	}

	raw, err := json.Marshal(portfolio)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "p", "createdAt": "", "currency": "", "status": "READY", "name": "",
		"positions": [{"id": "USD", "portfolioId": "p", "assetId": "USD", "quantity": 100000}]
	}`, string(raw))
}

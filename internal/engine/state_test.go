package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/ta-stream/internal/models"
	"github.com/mohamedkhairy/ta-stream/pkg/indicator"
)

func testQuote(symbol string, i int, close float64) *models.Quote {
	return &models.Quote{
		Symbol:    symbol,
		Timestamp: time.Date(2025, 6, 2, 9, 30+i, 0, 0, time.UTC),
		Open:      close,
		High:      close + 1,
		Low:       close - 1,
		Close:     close,
		Volume:    1000,
	}
}

func newStateWithSMA(t *testing.T, symbol string, period int) *SymbolState {
	t.Helper()
	state := NewSymbolState(symbol)
	sma, err := indicator.NewSMA(period)
	require.NoError(t, err)
	state.AddCalculator(sma)
	return state
}

func TestSymbolState_UpdateIgnoresOtherSymbols(t *testing.T) {
	state := newStateWithSMA(t, "AAPL", 3)

	require.NoError(t, state.Update(testQuote("MSFT", 0, 100)))
	assert.EqualValues(t, 0, state.QuotesSeen())

	require.NoError(t, state.Update(testQuote("AAPL", 0, 100)))
	assert.EqualValues(t, 1, state.QuotesSeen())
}

func TestSymbolState_GetAllValuesOnlyReady(t *testing.T) {
	state := newStateWithSMA(t, "AAPL", 3)

	// Two of three quotes: SMA window not full yet
	require.NoError(t, state.Update(testQuote("AAPL", 0, 2)))
	require.NoError(t, state.Update(testQuote("AAPL", 1, 4)))
	assert.Empty(t, state.GetAllValues())

	require.NoError(t, state.Update(testQuote("AAPL", 2, 6)))
	values := state.GetAllValues()
	require.Len(t, values, 1)
	assert.Equal(t, 4.0, values["sma_3"])
}

func TestSymbolState_GetValue(t *testing.T) {
	state := newStateWithSMA(t, "AAPL", 2)

	require.NoError(t, state.Update(testQuote("AAPL", 0, 10)))
	require.NoError(t, state.Update(testQuote("AAPL", 1, 20)))

	value, err := state.GetValue("sma_2")
	require.NoError(t, err)
	assert.Equal(t, 15.0, value)

	// Unknown calculator name is not an error
	value, err = state.GetValue("missing")
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestSymbolState_Reset(t *testing.T) {
	state := newStateWithSMA(t, "AAPL", 2)

	require.NoError(t, state.Update(testQuote("AAPL", 0, 10)))
	require.NoError(t, state.Update(testQuote("AAPL", 1, 20)))
	require.NotEmpty(t, state.GetAllValues())

	state.Reset()
	assert.EqualValues(t, 0, state.QuotesSeen())
	assert.True(t, state.LastQuoteTime().IsZero())
	assert.Empty(t, state.GetAllValues())
}

func TestSymbolState_RehydrateMatchesLiveFeed(t *testing.T) {
	live := newStateWithSMA(t, "AAPL", 3)
	rehydrated := newStateWithSMA(t, "AAPL", 3)

	quotes := []*models.Quote{
		testQuote("AAPL", 0, 105),
		testQuote("AAPL", 1, 106),
		testQuote("MSFT", 2, 999), // must be skipped
		testQuote("AAPL", 2, 107),
		testQuote("AAPL", 3, 108),
	}

	for _, q := range quotes {
		require.NoError(t, live.Update(q))
	}
	require.NoError(t, rehydrated.Rehydrate(quotes))

	assert.Equal(t, live.GetAllValues(), rehydrated.GetAllValues())
	assert.Equal(t, live.QuotesSeen(), rehydrated.QuotesSeen())
	assert.Equal(t, live.LastQuoteTime(), rehydrated.LastQuoteTime())
}

package wallet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress = "DKPZt3G5GWHRAMAYM5EkxMRsgF1rnb3fk9GvhcajKRT1"
	testMint    = "2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT"
)

func connect(t *testing.T, m *Manager) *Session {
	t.Helper()
	s, err := m.Connect(ConnectParams{
		Address: testAddress,
		SOL:     decimal.NewFromInt(10),
		Holdings: []Holding{
			{Mint: testMint, Symbol: "DOGEJR", Amount: decimal.NewFromInt(15000), CostSOL: decimal.RequireFromString("1.5")},
		},
	})
	require.NoError(t, err)
	return s
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	assert.False(t, m.Connected())
	assert.True(t, m.Balance(testMint).IsZero())
	_, err := m.SOLBalance()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, m.ApplyFill(Fill{}), ErrNotConnected)

	s := connect(t, m)
	assert.True(t, m.Connected())
	assert.Equal(t, "DKPZ...KRT1", s.ShortAddress())
	assert.True(t, decimal.NewFromInt(15000).Equal(m.Balance(testMint)))

	m.Disconnect()
	assert.False(t, m.Connected())
	assert.True(t, m.Balance(testMint).IsZero())
}

func TestConnectRejectsBadAddress(t *testing.T) {
	_, err := NewManager().Connect(ConnectParams{Address: "not-a-key"})
	assert.Error(t, err)

	_, err = NewManager().Connect(ConnectParams{Address: testAddress, SOL: decimal.NewFromInt(-1)})
	assert.Error(t, err)
}

func TestSessionApplyBuyAndSell(t *testing.T) {
	m := NewManager()
	s := connect(t, m)

	require.NoError(t, m.ApplyFill(Fill{
		ID: "1", Buy: true, Mint: testMint, Symbol: "DOGEJR",
		TokenAmount: decimal.NewFromInt(5000), SolAmount: decimal.RequireFromString("0.5"),
		Price: decimal.RequireFromString("0.0001"), At: time.Now(),
	}))
	assert.True(t, decimal.NewFromInt(20000).Equal(s.Balance(testMint)))
	assert.True(t, decimal.RequireFromString("9.5").Equal(s.SOL()))

	require.NoError(t, m.ApplyFill(Fill{
		ID: "2", Mint: testMint, Symbol: "DOGEJR",
		TokenAmount: decimal.NewFromInt(10000), SolAmount: decimal.RequireFromString("1.2"),
		At: time.Now(),
	}))
	assert.True(t, decimal.NewFromInt(10000).Equal(s.Balance(testMint)))
	assert.True(t, decimal.RequireFromString("10.7").Equal(s.SOL()))

	holdings := s.Holdings()
	require.Len(t, holdings, 1)
	assert.True(t, decimal.NewFromInt(1).Equal(holdings[0].CostSOL), "half the cost basis remains")

	trades := s.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, "2", trades[0].ID, "newest first")
	assert.Equal(t, "sell", trades[0].Side)
}

func TestSessionRejectsOverdraw(t *testing.T) {
	m := NewManager()
	s := connect(t, m)

	err := s.Apply(Fill{Buy: true, Mint: testMint, SolAmount: decimal.NewFromInt(11), TokenAmount: decimal.NewFromInt(1)})
	assert.Error(t, err)

	err = s.Apply(Fill{Mint: testMint, TokenAmount: decimal.NewFromInt(15001)})
	assert.Error(t, err)

	require.NoError(t, s.Apply(Fill{Mint: testMint, TokenAmount: decimal.NewFromInt(15000), SolAmount: decimal.NewFromInt(2)}))
	assert.Empty(t, s.Holdings(), "fully sold position is removed")
}

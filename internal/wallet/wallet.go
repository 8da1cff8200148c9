// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// ErrNotConnected возвращается, когда операция требует подключённый кошелёк.
var ErrNotConnected = errors.New("wallet not connected")

// maxTradeHistory: сколько последних сделок хранит сессия.
const maxTradeHistory = 50

// Holding: позиция по одному токену.
type Holding struct {
	Mint   string
	Symbol string
	Amount decimal.Decimal
	// CostSOL: потраченные SOL на оставшуюся часть позиции.
	CostSOL decimal.Decimal
}

// TradeRecord: исполненная сделка для истории профиля.
type TradeRecord struct {
	ID          string
	Side        string
	Mint        string
	Symbol      string
	TokenAmount decimal.Decimal
	SolAmount   decimal.Decimal
	Price       decimal.Decimal
	At          time.Time
}

// Fill: изменение баланса по результату сделки.
type Fill struct {
	ID          string
	Buy         bool
	Mint        string
	Symbol      string
	TokenAmount decimal.Decimal
	// SolAmount: SOL, списанные (покупка) или полученные (продажа), с учётом комиссии.
	SolAmount decimal.Decimal
	Price     decimal.Decimal
	At        time.Time
}

// Session: подключённый кошелёк. Создаётся при подключении и уничтожается при отключении.
type Session struct {
	address     solana.PublicKey
	connectedAt time.Time

	mu       sync.RWMutex
	sol      decimal.Decimal
	holdings map[string]*Holding
	trades   []TradeRecord
}

// Address возвращает адрес кошелька.
func (s *Session) Address() solana.PublicKey {
	return s.address
}

// ShortAddress возвращает адрес в виде "7xKD...9mL3".
func (s *Session) ShortAddress() string {
	addr := s.address.String()
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}

// ConnectedAt возвращает время подключения.
func (s *Session) ConnectedAt() time.Time {
	return s.connectedAt
}

// SOL возвращает баланс SOL.
func (s *Session) SOL() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sol
}

// Balance возвращает баланс токена (0, если позиции нет).
func (s *Session) Balance(mint string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.holdings[mint]; ok {
		return h.Amount
	}
	return decimal.Zero
}

// Holdings возвращает копию позиций, отсортированную по символу.
func (s *Session) Holdings() []Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Holding, 0, len(s.holdings))
	for _, h := range s.holdings {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Trades возвращает историю сделок, новые первыми.
func (s *Session) Trades() []TradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TradeRecord, len(s.trades))
	for i, tr := range s.trades {
		out[len(s.trades)-1-i] = tr
	}
	return out
}

// Apply применяет исполненную сделку к балансам.
func (s *Session) Apply(f Fill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.holdings[f.Mint]
	if !ok {
		h = &Holding{Mint: f.Mint, Symbol: f.Symbol}
	}

	side := "sell"
	if f.Buy {
		side = "buy"
		if f.SolAmount.GreaterThan(s.sol) {
			return fmt.Errorf("fill needs %s SOL, balance is %s", f.SolAmount, s.sol)
		}
		s.sol = s.sol.Sub(f.SolAmount)
		h.Amount = h.Amount.Add(f.TokenAmount)
		h.CostSOL = h.CostSOL.Add(f.SolAmount)
	} else {
		if f.TokenAmount.GreaterThan(h.Amount) {
			return fmt.Errorf("fill sells %s tokens, balance is %s", f.TokenAmount, h.Amount)
		}
		// Себестоимость уменьшаем пропорционально проданной доле
		if h.Amount.IsPositive() {
			remaining := h.Amount.Sub(f.TokenAmount).Div(h.Amount)
			h.CostSOL = h.CostSOL.Mul(remaining)
		}
		h.Amount = h.Amount.Sub(f.TokenAmount)
		s.sol = s.sol.Add(f.SolAmount)
	}

	if h.Amount.IsZero() {
		delete(s.holdings, f.Mint)
	} else {
		s.holdings[f.Mint] = h
	}

	s.trades = append(s.trades, TradeRecord{
		ID:          f.ID,
		Side:        side,
		Mint:        f.Mint,
		Symbol:      f.Symbol,
		TokenAmount: f.TokenAmount,
		SolAmount:   f.SolAmount,
		Price:       f.Price,
		At:          f.At,
	})
	if len(s.trades) > maxTradeHistory {
		s.trades = s.trades[len(s.trades)-maxTradeHistory:]
	}
	return nil
}

// ConnectParams: параметры подключения кошелька.
type ConnectParams struct {
	Address  string
	SOL      decimal.Decimal
	Holdings []Holding
}

// Manager хранит текущую сессию (или её отсутствие).
type Manager struct {
	mu      sync.RWMutex
	session *Session
}

// NewManager создаёт менеджер без подключённого кошелька.
func NewManager() *Manager {
	return &Manager{}
}

// Connect создаёт новую сессию, заменяя предыдущую.
func (m *Manager) Connect(p ConnectParams) (*Session, error) {
	addr, err := solana.PublicKeyFromBase58(p.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet address %q: %w", p.Address, err)
	}
	if p.SOL.IsNegative() {
		return nil, errors.New("SOL balance must not be negative")
	}

	s := &Session{
		address:     addr,
		connectedAt: time.Now(),
		sol:         p.SOL,
		holdings:    make(map[string]*Holding),
	}
	for _, h := range p.Holdings {
		if !h.Amount.IsPositive() {
			continue
		}
		h := h
		s.holdings[h.Mint] = &h
	}

	m.mu.Lock()
	m.session = s
	m.mu.Unlock()
	return s, nil
}

// Disconnect уничтожает текущую сессию.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
}

// Current возвращает текущую сессию.
func (m *Manager) Current() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.session != nil
}

// Connected сообщает, подключён ли кошелёк.
func (m *Manager) Connected() bool {
	_, ok := m.Current()
	return ok
}

// Balance возвращает баланс токена в текущей сессии (0 без кошелька).
func (m *Manager) Balance(mint string) decimal.Decimal {
	s, ok := m.Current()
	if !ok {
		return decimal.Zero
	}
	return s.Balance(mint)
}

// SOLBalance возвращает баланс SOL текущей сессии.
func (m *Manager) SOLBalance() (decimal.Decimal, error) {
	s, ok := m.Current()
	if !ok {
		return decimal.Zero, ErrNotConnected
	}
	return s.SOL(), nil
}

// ApplyFill применяет сделку к текущей сессии.
func (m *Manager) ApplyFill(f Fill) error {
	s, ok := m.Current()
	if !ok {
		return ErrNotConnected
	}
	return s.Apply(f)
}

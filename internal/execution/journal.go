// =============================================
// File: internal/execution/journal.go
// =============================================
package execution

import (
	"context"
	"time"

	"github.com/rovshanmuradov/memeterm/internal/logger"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"go.uber.org/zap"
)

var journalHeader = []string{"executed_at", "id", "side", "mint", "symbol", "token_amount", "sol_amount", "price", "fee"}

// Journal appends executed trades to a CSV file.
type Journal struct {
	csv *logger.SafeCSVWriter
}

// OpenJournal opens (or creates) the journal at path.
func OpenJournal(path string) (*Journal, error) {
	w, err := logger.NewSafeCSVWriter(path, journalHeader)
	if err != nil {
		return nil, err
	}
	return &Journal{csv: w}, nil
}

// Record appends one receipt.
func (j *Journal) Record(symbol string, r trade.Receipt) error {
	return j.csv.WriteRecord([]string{
		r.ExecutedAt.UTC().Format(time.RFC3339),
		r.ID,
		r.Direction.String(),
		r.Mint,
		symbol,
		r.TokenAmount.String(),
		r.SolAmount.String(),
		r.ExecutedPrice.String(),
		r.Fee.String(),
	})
}

// Close closes the journal file.
func (j *Journal) Close() error {
	return j.csv.Close()
}

// JournaledSubmitter records every successful execution of the wrapped submitter.
type JournaledSubmitter struct {
	next    trade.Submitter
	journal *Journal
	logger  *zap.Logger
}

// WithJournal wraps next. A journal write failure is logged, the trade already happened.
func WithJournal(next trade.Submitter, journal *Journal, logger *zap.Logger) *JournaledSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournaledSubmitter{next: next, journal: journal, logger: logger.Named("journal")}
}

// Execute implements trade.Submitter.
func (s *JournaledSubmitter) Execute(ctx context.Context, order trade.Order) (trade.Receipt, error) {
	r, err := s.next.Execute(ctx, order)
	if err != nil {
		return r, err
	}
	if jerr := s.journal.Record(order.Symbol, r); jerr != nil {
		s.logger.Error("Failed to journal trade", zap.String("id", r.ID), zap.Error(jerr))
	}
	return r, nil
}

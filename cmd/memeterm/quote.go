package main

import (
	"fmt"

	"github.com/rovshanmuradov/memeterm/internal/app"
	"github.com/rovshanmuradov/memeterm/internal/trade"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote {buy|sell} {mint|symbol} {amount}",
		Short: "Prints a trade quote at the current catalog price",
		Long: "Prints what a trade would yield without opening the terminal. " +
			"Amount is SOL for buy and token units for sell.",
		Example: "  memeterm quote buy DOGEJR 0.5\n  memeterm quote sell 2gMKR43578dM3vD3PNaiRwreKLVQBpFfBgifM9HjvdZT 7500",
		Args:    cobra.ExactArgs(3),
		RunE:    runQuote,
	}
	cmd.Flags().Int("slippage-bps", 0, "Slippage tolerance in basis points (default: trade.default_slippage_bps)")
	return cmd
}

func runQuote(cmd *cobra.Command, args []string) error {
	direction, err := trade.ParseDirection(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slippage, _ := cmd.Flags().GetInt("slippage-bps")
	if slippage == 0 {
		slippage = cfg.Trade.DefaultSlippageBps
	}

	// Котировка не пишет ни лог, ни журнал сделок
	cfg.Logging.TradeJournal = ""
	runner, err := app.NewRunner(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	defer runner.Shutdown()

	res, err := app.Quote(cmd.Context(), runner.Provider(), direction, args[1], args[2], slippage)
	if err != nil {
		return err
	}
	for _, line := range res.Lines() {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/settlement"
	"github.com/susu3304/warikan/internal/split"
)

type splitOutput struct {
	settlement.Result
	Plan []settlement.PayerGroup `json:"plan"`
}

// split --total <amount> <name=amount>...: print who pays whom.
func splitCmd() *cobra.Command {
	var (
		total   string
		asJSON  bool
		verbose bool
		format  render.Formatter
	)

	cmd := &cobra.Command{
		Use:     "split --total <amount> <name=amount>...",
		Short:   "Compute the transfers that settle a shared expense",
		Example: "  warikan split --total 300 F1=300 F2=0 F3=0",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := split.ParseAmount(total)
			if err != nil {
				return fmt.Errorf("--total: %w", err)
			}
			participants, err := split.ParseEntries(args)
			if err != nil {
				return err
			}

			log := logger.Nop()
			if verbose {
				if log, err = logger.New("dev"); err != nil {
					return err
				}
				defer log.Sync()
			}

			rec, err := split.NewService(log, nil).Compute(cmd.Context(), split.Request{
				Total:        amount,
				Participants: participants,
			})
			if err != nil {
				if settlement.IsInputError(err) {
					return errors.New(format.Error(err))
				}
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				plan := rec.Result.ByPayer()
				if plan == nil {
					plan = []settlement.PayerGroup{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(splitOutput{Result: rec.Result, Plan: plan})
			}
			_, err = fmt.Fprint(out, format.Summary(&rec.Result))
			return err
		},
	}

	cmd.Flags().StringVar(&total, "total", "", "total amount spent")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	cmd.Flags().StringVar(&format.Symbol, "symbol", "¥", "currency symbol")
	cmd.Flags().Int32Var(&format.Places, "places", 0, "decimal places shown")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

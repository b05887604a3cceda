package main

import (
	"errors"
	"fmt"

	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/SscSPs/pharmacy_moneybox/internal/utils"
	"github.com/spf13/cobra"
)

// errInconsistent makes verify exit non-zero once the problems are printed.
var errInconsistent = errors.New("money box log is inconsistent")

func newVerifyCmd() *cobra.Command {
	var pharmacyID string
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay the current money box log and compare it with the stored totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(cfg *config.Config, svc *portssvc.ServiceContainer) error {
				report, err := svc.MoneyBox.VerifyMoneyBox(cmd.Context(), pharmacyID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "money box %s: %d transactions\n", report.MoneyBoxID, report.TransactionCount)
				fmt.Fprintf(out, "  cash in:  %s\n", utils.FormatMoney(report.TotalCashIn, cfg.BaseCurrency))
				fmt.Fprintf(out, "  cash out: %s\n", utils.FormatMoney(report.TotalCashOut, cfg.BaseCurrency))
				fmt.Fprintf(out, "  balance:  %s\n", utils.FormatMoney(report.Balance, cfg.BaseCurrency))
				if report.OK() {
					fmt.Fprintln(out, "OK")
					return nil
				}
				for _, p := range report.Problems {
					fmt.Fprintf(out, "  problem: %s\n", p)
				}
				return errInconsistent
			})
		},
	}
	verifyCmd.Flags().StringVar(&pharmacyID, "pharmacy", "", "pharmacy ID")
	_ = verifyCmd.MarkFlagRequired("pharmacy")
	return verifyCmd
}

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	portssvc "github.com/SscSPs/pharmacy_moneybox/internal/core/ports/services"
	"github.com/SscSPs/pharmacy_moneybox/internal/dto"
	"github.com/SscSPs/pharmacy_moneybox/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRatesCmd() *cobra.Command {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage exchange rates",
	}

	var from, to, rate, source, notes string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Make a new rate active for a currency pair",
		Example: `  moneyboxctl rates set --from USD --to SYP --rate 2500
  moneyboxctl rates set --from SYP --to USD --rate 0.0004 --source API --notes "central bank"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(rate)
			if err != nil {
				return fmt.Errorf("invalid --rate %q: %w", rate, err)
			}
			return withServices(cmd.Context(), func(_ *config.Config, svc *portssvc.ServiceContainer) error {
				created, err := svc.ExchangeRate.SetRate(cmd.Context(), dto.CreateExchangeRateRequest{
					FromCurrency: from,
					ToCurrency:   to,
					Rate:         value,
					Source:       source,
					Notes:        notes,
				}, actorID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rate %s active: 1 %s = %s %s\n",
					created.ExchangeRateID, created.FromCurrency, created.Rate.String(), created.ToCurrency)
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&from, "from", "", "source currency code")
	setCmd.Flags().StringVar(&to, "to", "", "target currency code")
	setCmd.Flags().StringVar(&rate, "rate", "", "units of the target currency per unit of the source")
	setCmd.Flags().StringVar(&source, "source", "", "MANUAL, API or SYSTEM (default MANUAL)")
	setCmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	_ = setCmd.MarkFlagRequired("from")
	_ = setCmd.MarkFlagRequired("to")
	_ = setCmd.MarkFlagRequired("rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the active exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(_ *config.Config, svc *portssvc.ServiceContainer) error {
				rates, err := svc.ExchangeRate.ListActiveRates(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPAIR\tRATE\tSOURCE\tEFFECTIVE FROM")
				for _, r := range rates {
					fmt.Fprintf(w, "%s\t%s/%s\t%s\t%s\t%s\n",
						r.ExchangeRateID, r.FromCurrency, r.ToCurrency, r.Rate.String(), r.Source, r.EffectiveFrom.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}

	ratesCmd.AddCommand(setCmd, listCmd)
	return ratesCmd
}

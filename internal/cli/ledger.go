package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"timehair/internal/database"
	"timehair/internal/domain"
	"timehair/internal/modules/ledger"
)

func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Sales ledger reports",
	}
	cmd.AddCommand(newLedgerSummaryCommand(rootOpts))
	cmd.AddCommand(newLedgerDailyCommand(rootOpts))
	return cmd
}

func newLedgerSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	var f ledger.Filter

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Revenue totals per staff member and service",
		Long: `Revenue totals per staff member and per service.

--date wins over --from/--to. Without any date the summary covers today.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(ctx context.Context, s *database.Store) error {
				summary, err := ledger.NewService(s).Summary(ctx, f)
				if err != nil {
					return WrapExitError(ExitFailure, "ledger summary", err)
				}
				return rootOpts.formatter(cmd).Success(summary, func(w io.Writer) error {
					return writeSummary(w, summary)
				})
			})
		},
	}

	cmd.Flags().StringVar(&f.Date, "date", "", "single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.StartDate, "from", "", "range start, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.EndDate, "to", "", "range end, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.StaffID, "staff", "", "only this staff id")
	return cmd
}

func newLedgerDailyCommand(rootOpts *RootOptions) *cobra.Command {
	var q ledger.DailyQuery

	cmd := &cobra.Command{
		Use:          "daily",
		Short:        "Revenue per day of one month",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(ctx context.Context, s *database.Store) error {
				totals, err := ledger.NewService(s).DailyTotals(ctx, q)
				if err != nil {
					return WrapExitError(ExitFailure, "ledger daily", err)
				}
				return rootOpts.formatter(cmd).Success(totals, func(w io.Writer) error {
					return writeDaily(w, totals)
				})
			})
		},
	}

	cmd.Flags().IntVar(&q.Year, "year", 0, "year (default: current)")
	cmd.Flags().IntVar(&q.Month, "month", 0, "month 1-12 (default: current)")
	return cmd
}

func writeSummary(out io.Writer, s *domain.LedgerSummary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TOTAL\t%d\t%d건\n", s.TotalRevenue, s.TotalCount)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STAFF\tREVENUE\tCOUNT")
	for _, r := range s.ByStaff {
		fmt.Fprintf(w, "%s\t%d\t%d\n", r.StaffName, r.Revenue, r.Count)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SERVICE\tREVENUE\tCOUNT")
	for _, r := range s.ByService {
		fmt.Fprintf(w, "%s\t%d\t%d\n", r.ServiceName, r.Revenue, r.Count)
	}
	return w.Flush()
}

func writeDaily(out io.Writer, totals []domain.DailyTotal) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tREVENUE\tCOUNT")
	for _, d := range totals {
		fmt.Fprintf(w, "%s\t%d\t%d\n", d.Date, d.Revenue, d.Count)
	}
	return w.Flush()
}

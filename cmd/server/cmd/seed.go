package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eventease/server/internal/domain/events"
)

var seedCheckCmd = &cobra.Command{
	Use:   "seed-check",
	Short: "Print the seeded event catalog",
	Long: `Print the event catalog exactly as a fresh server would seed it,
one row per event with capacity and current registration count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := events.NewStore(zerolog.Nop())

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDATE\tLOCATION\tPRICE\tCAPACITY\tREGISTERED\tSPOTS")
		for _, event := range catalog.List(cmd.Context()) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%d\t%d\t%d\n",
				event.ID,
				event.Name,
				event.Date.Format("2006-01-02"),
				event.Location,
				event.Price,
				event.Capacity,
				event.RegisteredCount,
				event.AvailableSpots(),
			)
		}
		return w.Flush()
	},
}

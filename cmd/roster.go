package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nhltiers/core/model"
	"github.com/kilianp07/nhltiers/core/roster"
)

var (
	tierFilter int
	query      string
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Roster related commands",
}

var rosterLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List players with their tier",
	RunE:  runRosterLs,
}

func init() {
	rosterLsCmd.Flags().IntVar(&tierFilter, "tier", 0, "only list players of this tier (1-5)")
	rosterLsCmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, team or position")
	rosterCmd.AddCommand(rosterLsCmd)
	rootCmd.AddCommand(rosterCmd)
}

func runRosterLs(cmd *cobra.Command, args []string) error {
	if tierFilter < 0 || tierFilter > len(roster.Tiers) {
		return fmt.Errorf("tier must be between 1 and %d", len(roster.Tiers))
	}
	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	return printRoster(cmd, svc.Directory.Search(query), roster.Tier(tierFilter))
}

func printRoster(cmd *cobra.Command, players []model.Player, only roster.Tier) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tTEAM\tPOS\tGP\tPTS\tTIER"); err != nil {
		return err
	}
	for _, p := range players {
		t := roster.TierFor(p.CurrentSeasonPoints)
		if only != 0 && t != only {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			p.ID, p.Name, p.Team, p.Position, p.GamesPlayed, p.CurrentSeasonPoints, t.Label()); err != nil {
			return err
		}
	}
	return w.Flush()
}

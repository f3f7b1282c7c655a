package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nhltiers/core/model"
)

var historyCmd = &cobra.Command{
	Use:   "history <player-id>",
	Short: "Show the prediction history of a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var historyActualCmd = &cobra.Command{
	Use:   "actual <player-id> <prediction-id> <points>",
	Short: "Record the points a player actually scored for a past prediction",
	Args:  cobra.ExactArgs(3),
	RunE:  runHistoryActual,
}

func init() {
	historyCmd.AddCommand(historyActualCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	id := model.PlayerID(args[0])
	preds := svc.History.History(id)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tDATE\tPREDICTED\tRANGE\tCONFIDENCE\tACTUAL"); err != nil {
		return err
	}
	for _, p := range preds {
		actual := "-"
		if p.ActualPoints != nil {
			actual = strconv.Itoa(*p.ActualPoints)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d-%d\t%.0f%%\t%s\n",
			p.ID, p.Timestamp.Format(time.DateOnly), p.PredictedPoints, p.Range.Low, p.Range.High, p.Confidence*100, actual); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if acc, ok := svc.History.Accuracy(id); ok {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "accuracy: %.1f%%\n", acc)
	}
	return err
}

func runHistoryActual(cmd *cobra.Command, args []string) error {
	points, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("points: %w", err)
	}
	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()
	return svc.History.RecordActual(cmd.Context(), model.PlayerID(args[0]), args[1], points)
}

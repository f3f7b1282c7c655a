package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/nhltiers/core/model"
)

var predictCmd = &cobra.Command{
	Use:   "predict <player-id>",
	Short: "Predict a player's points for next season",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	p, ok := svc.Directory.Get(model.PlayerID(args[0]))
	if !ok {
		return fmt.Errorf("player %s not found", args[0])
	}
	pred := svc.Engine.PredictNextSeason(cmd.Context(), p)
	out, err := json.MarshalIndent(struct {
		Player     string           `json:"player"`
		Team       string           `json:"team"`
		Prediction model.Prediction `json:"prediction"`
	}{p.Name, p.Team, pred}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

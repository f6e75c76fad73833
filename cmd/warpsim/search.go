package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/optim"
)

func newSearchCmd() *cobra.Command {
	var vary, objective string
	var steps int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "grid search sliders for the parameters minimising an objective",
		Long: "search walks every combination of the --vary sliders, starting from the\n" +
			"current parameters, and reports the one with the lowest objective score.\n" +
			"objectives: " + strings.Join(optim.ObjectiveNames(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := optim.ObjectiveFor(cfg.Mode, objective)
			if err != nil {
				return err
			}
			names := strings.Split(vary, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}
			grid, err := optim.NewSliderGrid(names, steps)
			if err != nil {
				return err
			}

			logger.Info("searching", "mode", cfg.Mode, "vary", names, "points", grid.Size(), "objective", objective)
			best, score, err := grid.Search(cmd.Context(), cfg.Params, obj)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return json.NewEncoder(out).Encode(struct {
					Mode      metric.Mode   `json:"mode"`
					Objective string        `json:"objective"`
					Score     float64       `json:"score"`
					Params    metric.Params `json:"params"`
				}{cfg.Mode, objective, score, best})
			}
			fmt.Fprintf(out, "searched %d points\n", grid.Size())
			fmt.Fprintf(out, "best:  %s\n", paramSummary(best))
			fmt.Fprintf(out, "score: %.6g (%s)\n", score, objective)
			return nil
		},
	}
	cmd.Flags().StringVar(&vary, "vary", "lambda", "comma separated sliders to vary")
	cmd.Flags().StringVar(&objective, "objective", "min", "objective to minimise")
	cmd.Flags().IntVar(&steps, "steps", 11, "grid stops per slider")
	return cmd
}

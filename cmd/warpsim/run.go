package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/automation"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "run a scripted scenario of samples, snapshots and exports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			if scenario.Theme == "" {
				scenario.Theme = cfg.Theme
			}

			var st *storage.Store
			for _, step := range scenario.Steps {
				if step.SaveAs != "" {
					if st, err = openStore(); err != nil {
						return err
					}
					defer st.Close()
					break
				}
			}

			results, err := automation.RunScenario(cmd.Context(), scenario, st, logger)
			out := cmd.OutOrStdout()
			if format == "json" {
				if encErr := json.NewEncoder(out).Encode(results); encErr != nil {
					return encErr
				}
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tMODE\tVIEW\tPARAMS\tMAX\tSNAPSHOT\tEXPORT")
			for _, r := range results {
				id := r.SnapshotID
				if len(id) > 8 {
					id = id[:8]
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Step, r.Mode, r.View, paramSummary(r.Params),
					metric.FormatFixed(r.Summary.Max, metric.Decimals), id, r.Exported)
			}
			if flushErr := w.Flush(); flushErr != nil {
				return flushErr
			}
			return err
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/export"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
)

func openStore() (*storage.Store, error) {
	return storage.Open(cfg.DataDir, logger)
}

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "sample the current parameters and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			snap := storage.Snapshot{Mode: cfg.Mode, View: cfg.View, Params: cfg.Params}
			if len(args) == 1 {
				snap.Name = args[0]
			}
			saved, err := st.Save(cmd.Context(), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s (%d points, %s)\n", saved.ID, saved.Points, humanize.Bytes(uint64(saved.Size)))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			snaps, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				if snaps == nil {
					snaps = []storage.Snapshot{}
				}
				return json.NewEncoder(out).Encode(snaps)
			}
			if len(snaps) == 0 {
				fmt.Fprintln(out, "no snapshots found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMODE\tVIEW\tPARAMS\tPOINTS\tSIZE\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					s.ID[:8],
					s.Name,
					s.Mode,
					s.View,
					paramSummary(s.Params),
					s.Points,
					humanize.Bytes(uint64(s.Size)),
					humanize.Time(s.CreatedAt),
				)
			}
			return w.Flush()
		},
	}
}

func paramSummary(p metric.Params) string {
	return fmt.Sprintf("t=%g T=%g Λ=%g W=%g rot=%g", p.Time, p.Tensor, p.Lambda, p.WarpStrength, p.RotationDeg)
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "print a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			snap, recs, err := st.LoadRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					storage.Snapshot
					Records *storage.Records `json:"records"`
				}{snap, recs})
			case "csv":
				if recs.View == metric.View3D {
					return export.WriteRecordsCSV3D(out, recs.Samples)
				}
				return export.WriteRecordsCSV2D(out, recs.Points)
			}

			fmt.Fprintf(out, "id:      %s\n", snap.ID)
			if snap.Name != "" {
				fmt.Fprintf(out, "name:    %s\n", snap.Name)
			}
			fmt.Fprintf(out, "mode:    %s %s\n", snap.Mode, snap.View)
			fmt.Fprintf(out, "params:  %s\n", paramSummary(snap.Params))
			fmt.Fprintf(out, "created: %s (%s)\n\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"), humanize.Time(snap.CreatedAt))
			if recs.View == metric.View3D {
				return writeTable3D(out, recs.Samples)
			}
			return writeTable2D(out, recs.Points)
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", args[0])
			return nil
		},
	}
}

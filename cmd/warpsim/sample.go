package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/analysis"
	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/export"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/viz"
)

func newSampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "print the sampled curve or surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSample(cmd.OutOrStdout(), cfg.Mode, cfg.View, cfg.Params)
		},
	}
}

func writeSample(w io.Writer, mode metric.Mode, view metric.View, p metric.Params) error {
	if view == metric.View3D {
		samples := metric.Sample3D(mode, p, metric.Domain3D)
		switch format {
		case "json":
			return export.WriteJSON3D(w, samples)
		case "csv":
			return export.WriteCSV3D(w, samples)
		}
		return writeTable3D(w, metric.Records3D(samples))
	}

	pts := metric.Sample2D(mode, p, metric.Domain2D)
	switch format {
	case "json":
		return export.WriteJSON2D(w, pts)
	case "csv":
		return export.WriteCSV2D(w, pts)
	}
	return writeTable2D(w, metric.Records2D(pts))
}

func writeTable2D(w io.Writer, recs []metric.Record2D) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "X\tY\t")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t\n", r.X, r.Y)
	}
	return tw.Flush()
}

func writeTable3D(w io.Writer, recs []metric.Record3D) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "I\tJ\tZ\tSX\tSY\tSZ\t")
	for _, r := range recs {
		fmt.Fprintf(tw, "%g\t%g\t%s\t%g\t%g\t%s\t\n",
			r.Raw.X, r.Raw.Y, metric.FormatFixed(r.Raw.Z, 4),
			r.Scaled.X, r.Scaled.Y, metric.FormatFixed(r.Scaled.Z, 2))
	}
	return tw.Flush()
}

func newPlotCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "draw the curve (2d) or surface (3d) in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cfg.View == metric.View3D {
				canvas := viz.NewCanvas(width, height)
				viz.RenderCloud(canvas, metric.Sample3D(cfg.Mode, cfg.Params, metric.Domain3D), viz.NewCamera(), true)
				_, err := fmt.Fprintln(out, canvas.String())
				return err
			}
			pts := metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D)
			_, err := fmt.Fprintln(out, viz.Chart2D(pts, width, height, viz.Caption2D(cfg.Mode, pts)))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 60, "plot width in columns")
	cmd.Flags().IntVar(&height, "height", 15, "plot height in rows")
	return cmd
}

func newWarpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warp [x] [y]",
		Short: "evaluate the warp shape function and energy density",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var xy [2]float64
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("invalid coordinate %q", a)
				}
				xy[i] = v
			}
			res := metric.WarpMetric(xy[0], xy[1], cfg.Params.WarpStrength)
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return json.NewEncoder(out).Encode(res)
			case "csv":
				_, err := fmt.Fprintf(out, "x,y,w,shape,energyDensity\n%g,%g,%g,%g,%g\n",
					xy[0], xy[1], cfg.Params.WarpStrength, res.Shape, res.EnergyDensity)
				return err
			}
			fmt.Fprintf(out, "position:       (%g, %g)\n", xy[0], xy[1])
			fmt.Fprintf(out, "warp strength:  %g\n", cfg.Params.WarpStrength)
			fmt.Fprintf(out, "shape:          %.6g\n", res.Shape)
			fmt.Fprintf(out, "energy density: %.6g\n", res.EnergyDensity)
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var sweep string
	var steps int
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "summary statistics and spectrum of the 2d curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pts := metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D)
			summary := analysis.Summarize(pts)
			spectrum := analysis.Spectrum(pts)

			report := struct {
				Mode        metric.Mode            `json:"mode"`
				Params      metric.Params          `json:"params"`
				Summary     analysis.Summary       `json:"summary"`
				Spectrum    []float64              `json:"spectrum"`
				Dominant    int                    `json:"dominantBin"`
				TotalEnergy *float64               `json:"totalEnergy,omitempty"`
				Sweep       []analysis.SweepPoint  `json:"sweep,omitempty"`
				Profile     []analysis.EnergyPoint `json:"profile,omitempty"`
			}{
				Mode:     cfg.Mode,
				Params:   cfg.Params,
				Summary:  summary,
				Spectrum: spectrum,
				Dominant: analysis.DominantBin(spectrum),
			}
			if cfg.Mode == metric.Warp {
				report.Profile = analysis.EnergyProfile(cfg.Params.WarpStrength, metric.Domain2D)
				total := analysis.TotalEnergy(report.Profile)
				report.TotalEnergy = &total
			}
			if sweep != "" {
				sp, err := analysis.Sweep(cfg.Mode, cfg.Params, sweep, steps)
				if err != nil {
					return err
				}
				report.Sweep = sp
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "mode %s, %d points\n\n", cfg.Mode, summary.Count)
			fmt.Fprintf(out, "  min   %10.4f at x=%g\n", summary.Min, summary.ArgMin)
			fmt.Fprintf(out, "  max   %10.4f at x=%g\n", summary.Max, summary.ArgMax)
			fmt.Fprintf(out, "  mean  %10.4f\n", summary.Mean)
			fmt.Fprintf(out, "  zero crossings: %d\n", summary.ZeroCrossings)
			fmt.Fprintf(out, "  dominant frequency bin: %d of %d\n", report.Dominant, len(spectrum))
			if report.TotalEnergy != nil {
				fmt.Fprintf(out, "  total energy along y=0: %.6g\n", *report.TotalEnergy)
			}
			if len(report.Sweep) > 0 {
				r, _ := config.RangeFor(sweep)
				fmt.Fprintf(out, "\nsweep of %s\n", r.Label)
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(tw, "VALUE\tMIN\tMAX\t")
				for _, p := range report.Sweep {
					fmt.Fprintf(tw, "%g\t%.4f\t%.4f\t\n", p.Param, p.Min, p.Max)
				}
				return tw.Flush()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sweep, "sweep", "", "sweep one parameter across its range (time, tensor, lambda, warp, rotation)")
	cmd.Flags().IntVar(&steps, "steps", 11, "number of sweep stops")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PRESET\tVIEW\tT\tTENSOR\tLAMBDA\tW\tROT\tANIMATE")
			for _, m := range metric.Modes() {
				for _, name := range config.ListPresets(m.String()) {
					p := config.GetPreset(m.String(), name)
					fmt.Fprintf(tw, "%s/%s\t%s\t%g\t%g\t%g\t%g\t%g\t%v\n", m, name, p.View,
						p.Params.Time, p.Params.Tensor, p.Params.Lambda, p.Params.WarpStrength, p.Params.RotationDeg, p.Animate)
				}
			}
			return tw.Flush()
		},
	}
}

func newRangesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranges",
		Short: "list parameter ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if format == "json" {
				return json.NewEncoder(out).Encode(config.Ranges)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLABEL\tMIN\tMAX\tSTEP\tDEFAULT")
			for _, r := range config.Ranges {
				hi := fmt.Sprintf("%g]", r.Max)
				if r.Wrap {
					hi = fmt.Sprintf("%g)", r.Max)
				}
				fmt.Fprintf(tw, "%s\t%s\t[%g\t%s\t%g\t%g\n", r.Name, r.Label, r.Min, hi, r.Step, r.Default)
			}
			return tw.Flush()
		},
	}
}

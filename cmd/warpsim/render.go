package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/export"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/server"
	"github.com/san-kum/warpsim/internal/storage"
	"github.com/san-kum/warpsim/internal/viz"
)

func newSVGCmd() *cobra.Command {
	var output string
	var width, height int
	cmd := &cobra.Command{
		Use:   "svg",
		Short: "export the curve or surface as svg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			color := string(viz.GetTheme(cfg.Theme).Primary)
			var svg string
			if cfg.View == metric.View3D {
				svg = export.CloudSVG(metric.Sample3D(cfg.Mode, cfg.Params, metric.Domain3D), viz.NewCamera(), width, height, color)
			} else {
				svg = export.CurveSVG(metric.Sample2D(cfg.Mode, cfg.Params, metric.Domain2D), width, height, color)
			}
			if output == "" || output == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
				return err
			}
			if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported: %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 600, "image height")
	return cmd
}

func newGIFCmd() *cobra.Command {
	var output string
	var frames, cols, rows int
	cmd := &cobra.Command{
		Use:   "gif",
		Short: "render a rotating 3d surface as an animated gif",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("rendering gif", "mode", cfg.Mode, "frames", frames)
			anim, err := export.RotationGIF(ctx, cfg.Mode, cfg.Params, frames, cols, rows, viz.GetTheme(cfg.Theme))
			if err != nil {
				return err
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := export.WriteGIF(f, anim); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported: %s (%d frames)\n", output, len(anim.Image))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "warpsim.gif", "output file")
	cmd.Flags().IntVar(&frames, "frames", 360, "number of frames, one degree apart")
	cmd.Flags().IntVar(&cols, "cols", 60, "canvas width in braille cells")
	cmd.Flags().IntVar(&rows, "rows", 30, "canvas height in braille cells")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	var noStore bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve samples over http and websockets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}

			var st *storage.Store
			if !noStore {
				var err error
				if st, err = openStore(); err != nil {
					return err
				}
				defer st.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(cfg, st, logger).ListenAndServe(ctx, cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "disable the snapshot endpoints")
	return cmd
}

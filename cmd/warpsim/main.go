package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/viz"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	// sampling flags
	timeParam   float64
	tensorParam float64
	lambdaParam float64
	warpParam   float64
	rotParam    float64
	modeFlag    string
	viewFlag    string
	preset      string
	format      string
	// resolved by the root PersistentPreRunE
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "warpsim",
		Short:        "toy spacetime metric sampler",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := setupLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			cfg, err = resolveConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.Float64Var(&timeParam, "time", 0, "time parameter t")
	pf.Float64Var(&tensorParam, "tensor", 0, "tensor parameter T")
	pf.Float64Var(&lambdaParam, "lambda", 0, "cosmological term Λ")
	pf.Float64Var(&warpParam, "warp", 0, "warp strength W")
	pf.Float64Var(&rotParam, "rot", 0, "rotation angle in degrees")
	pf.StringVar(&modeFlag, "mode", "time", "mode (time, tensor, warp)")
	pf.StringVar(&viewFlag, "view", "2d", "view (2d, 3d)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&format, "format", "table", "output format (table, json, csv)")

	rootCmd.AddCommand(
		newSampleCmd(),
		newPlotCmd(),
		newWarpCmd(),
		newAnalyzeCmd(),
		newSearchCmd(),
		newRunCmd(),
		newSaveCmd(),
		newListCmd(),
		newShowCmd(),
		newRmCmd(),
		newSVGCmd(),
		newGIFCmd(),
		newServeCmd(),
		newPresetsCmd(),
		newRangesCmd(),
	)
	return rootCmd
}

// setupLogger installs a text slog handler on stderr so stdout stays clean
// for sample output.
func setupLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(l)
	return l, nil
}

// resolveConfig layers defaults, then the preset, then the config file and
// finally any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	c := config.DefaultConfig()

	if preset != "" {
		presetMode := modeFlag
		name := preset
		if m, n, ok := strings.Cut(preset, "/"); ok {
			presetMode, name = m, n
		}
		p := config.GetPreset(presetMode, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, presetMode, config.ListPresets(presetMode))
		}
		c.ApplyPreset(p)
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, c); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("config loaded", "path", configFile)
	}

	if flags.Changed("mode") {
		m, err := metric.ParseMode(modeFlag)
		if err != nil {
			return nil, err
		}
		c.Mode = m
	}
	if flags.Changed("view") {
		v, err := metric.ParseView(viewFlag)
		if err != nil {
			return nil, err
		}
		c.View = v
	}
	for flag, v := range map[string]float64{
		"time":   timeParam,
		"tensor": tensorParam,
		"lambda": lambdaParam,
		"warp":   warpParam,
		"rot":    rotParam,
	} {
		if !flags.Changed(flag) {
			continue
		}
		name := flag
		if flag == "rot" {
			name = "rotation"
		}
		c.Params, _ = config.Set(c.Params, name, v)
	}
	if flags.Changed("data") || c.DataDir == "" {
		c.DataDir = dataDir
	}

	if err := c.Params.Validate(); err != nil {
		return nil, err
	}
	c.Params = config.Clamp(c.Params)
	logger.Debug("config resolved", "mode", c.Mode, "view", c.View, "params", fmt.Sprintf("%+v", c.Params))
	return c, nil
}

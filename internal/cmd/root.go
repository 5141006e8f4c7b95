// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cmd implements the hwgen command line interface.
//
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/db47h/hwgen/internal/config"
	"github.com/db47h/hwgen/internal/output"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	configFile string
	verbose    bool
	cfg        *config.Config
}

// NewRootCmd returns the root command.
//
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "hwgen",
		Short: "VHDL and Verilog generator for logic components",
		Long: `hwgen generates VHDL and Verilog for LED arrays and TTL gate packages,
and simulates the same components on a four-valued logic model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./"+config.DefaultFile+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug output")
	pf.String("dialect", "vhdl", "HDL dialect: vhdl or verilog (env: HWGEN_DIALECT)")
	pf.String("output-dir", ".", "output directory (env: HWGEN_OUTPUTDIR)")
	pf.Int("workers", 0, "maximum concurrent generation jobs, 0 for no limit (env: HWGEN_WORKERS)")
	pf.Int("steps", 8, "simulation steps per clock cycle (env: HWGEN_STEPS)")
	pf.String("log-level", "info", "log level: debug, info, warn or error (env: HWGEN_LOG_LEVEL)")
	pf.Bool("timestamps", false, "show timestamps in log output (env: HWGEN_LOG_TIMESTAMPS)")

	root.AddCommand(
		newGenerateCmd(a),
		newSignalsCmd(a),
		newBodyCmd(a),
		newFamiliesCmd(),
		newSimulateCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if err = output.SetupLogging(output.LogConfig{
		Level:      cfg.Log.Level,
		Verbose:    a.verbose,
		Timestamps: cfg.Log.Timestamps,
	}, cmd.ErrOrStderr()); err != nil {
		return err
	}
	output.Debug("configuration loaded", "dialect", cfg.Dialect, "outputDir", cfg.OutputDir, "workers", cfg.Workers)
	return nil
}

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/config"
	"github.com/RyanBlaney/sonido-samples/logging"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

// app is the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	session *common.Session

	// config keys of subcommand flags, bound when that command runs
	local map[*cobra.Command]map[string]string
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"verbosity":   "session.verbosity",
	"colors":      "session.colors",
	"mode":        "file.mode",
	"precision":   "file.precision",
	"description": "file.description",
	"gzip-level":  "file.gzip_level",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), local: map[*cobra.Command]map[string]string{}}

	root := &cobra.Command{
		Use:   "samples",
		Short: "Inspect and process detector pulse samples files",
		Long: "samples reads and writes samples files and applies the pulse shaping\n" +
			"and spectral routines to them. The file name \"-\" stands for stdin or\n" +
			"stdout and a .gz suffix compresses the file.\n\n" +
			"Settings come from --config, SAMPLES_* environment variables and flags.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.IntP("verbosity", "v", config.DefaultSessionConfig().Verbosity, "0 silent, 1 errors, 2 warnings, 3 i/o, 4 info, 5 trace")
	pf.Bool("colors", false, "color the diagnostics")
	pf.StringP("mode", "m", config.DefaultFileConfig().Mode, "output mode: s(catter), g(nuplot), m(atrix) or b(inary)")
	pf.Int("precision", samplefile.DefaultPrecision, "significant digits of text output")
	pf.String("description", "", "description stored in written headers")
	pf.Int("gzip-level", config.DefaultFileConfig().GzipLevel, "compression level of .gz outputs")
	for name, key := range flagKeys {
		cobra.CheckErr(a.v.BindPFlag(key, pf.Lookup(name)))
	}

	root.AddCommand(
		newInfoCmd(a),
		newConvertCmd(a),
		newRebinCmd(a),
		newSmoothCmd(a),
		newFilterCmd(a),
		newCFDCmd(a),
		newTriggerCmd(a),
		newSpectrumCmd(a),
		newWAVCmd(a),
	)
	return root
}

// setup loads the configuration and opens the session. Diagnostics go to
// the command's error stream, "-" to its input and output streams.
func (a *app) setup(cmd *cobra.Command) error {
	for name, key := range a.local[cmd] {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Session.LogVerbosity())
	logger.SetColors(cfg.Session.Colors && logging.IsTerminal(cmd.ErrOrStderr()))
	a.session = common.NewSession(logger).WithStreams(cmd.InOrStdin(), cmd.OutOrStdout())
	return nil
}

// bindFlag lets a subcommand flag override a config key. Several
// subcommands may share a key; only the running one is bound.
func (a *app) bindFlag(cmd *cobra.Command, name, key string) {
	if a.local[cmd] == nil {
		a.local[cmd] = map[string]string{}
	}
	a.local[cmd][name] = key
}

// write stores g with the configured writer. An empty configured
// description keeps desc.
func (a *app) write(name string, g *common.Grid, ycal, xcal common.Calibration, norm float64, desc string) error {
	w, err := a.cfg.File.Writer()
	if err != nil {
		return err
	}
	if a.cfg.File.Description != "" {
		desc = a.cfg.File.Description
	}
	return w.Write2D(a.session, name, g, ycal, xcal, norm, desc)
}

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"shapemask/internal/config"
	"shapemask/internal/job"
	"shapemask/internal/logx"
	"shapemask/internal/mask"
	"shapemask/internal/tui"
)

// app carries flag values and the resolved config across commands.
type app struct {
	configPath string
	logLevel   string

	water    bool
	area     string
	output   string
	progress string

	cfg config.Config
}

// setup loads the config file, applies flag overrides and installs the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return usageError{err}
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.progress != "" {
		cfg.Progress = a.progress
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	l, err := logx.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return usageError{err}
	}
	logx.SetLogger(l)
	a.cfg = cfg
	return nil
}

func (a *app) generateArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return usageError{fmt.Errorf("expected SHAPEFILE_NAME and RESOLUTION, got %d argument(s)", len(args))}
	}
	if r, err := strconv.Atoi(args[1]); err != nil || r < 1 {
		return usageError{fmt.Errorf("resolution %q must be an integer number of meters >= 1", args[1])}
	}
	return nil
}

func (a *app) generate(cmd *cobra.Command, args []string) error {
	res, _ := strconv.Atoi(args[1])
	fmt.Fprintf(cmd.OutOrStdout(), "\n\n%s\n\n", version)

	opts := job.Options{
		Input:      args[0],
		AreaPath:   a.area,
		Output:     a.output,
		Resolution: res,
		Water:      a.water,
		Version:    version,
	}.WithDefaults(a.cfg.AreaExt, a.cfg.OutputExt)

	reporter, stop := a.reporter(cmd.ErrOrStderr(), fmt.Sprintf("Rasterizing %s at %d m", args[0], res))
	opts.Reporter = reporter
	result, err := job.Run(opts)
	stop()
	if err != nil {
		return err
	}
	logx.Logger().Info("done",
		"output", result.Output,
		"rings", result.Rings,
		"land_cells", result.Land,
		"elapsed", result.Elapsed)
	fmt.Fprintf(cmd.ErrOrStderr(), "100%% processed - %s (%dx%d)\n\n",
		result.Output, result.Geometry.Width, result.Geometry.Height)
	return nil
}

// reporter picks the progress display. The returned func must be called
// once the engine has finished.
func (a *app) reporter(w io.Writer, title string) (mask.Reporter, func()) {
	mode := a.cfg.Progress
	if mode == config.ProgressAuto {
		mode = config.ProgressPlain
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			mode = config.ProgressTUI
		}
	}
	switch mode {
	case config.ProgressTUI:
		r := tui.NewProgressReporter(title, w)
		r.OnAbort = func() {
			fmt.Fprintln(os.Stderr, "shapemask: aborted")
			os.Exit(130)
		}
		r.Start()
		return r, r.Close
	case config.ProgressPlain:
		return mask.NewPlainReporter(w), func() { fmt.Fprintln(w) }
	}
	return mask.NopReporter{}, func() {}
}

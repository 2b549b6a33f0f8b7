package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shapemask/internal/job"
)

var version = "shapemask V1.0.0 - 10/19/2026"

const longHelp = `Reads a vector file containing land or water polygons and a surrounding
generic area file and creates a land mask at the specified resolution. The
output file is ALWAYS a land mask regardless of whether the input contains
land or water polygons.

Caveats:
  The input must contain complete polygons for all land (or water) areas.
  In addition to the vector file there MUST be a generic area file (.are)
  with the same name (e.g. fred.shp, fred.are) that defines the entire area
  to be covered by the mask, unless --area is given.`

// usageError marks failures that should be followed by the usage text.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	root := newRootCmd()
	c, err := root.ExecuteC()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "shapemask: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, job.ErrArea) {
		if c == root {
			fmt.Fprintf(os.Stderr, "\n%s\n\n", root.Long)
		}
		fmt.Fprint(os.Stderr, c.UsageString())
	}
	os.Exit(1)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "shapemask SHAPEFILE_NAME RESOLUTION [-w]",
		Short:         "Rasterize land/water polygons into a land mask",
		Long:          longHelp,
		Version:       version,
		Args:          a.generateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML config file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	f := cmd.Flags()
	f.BoolVarP(&a.water, "water", "w", false, "input polygons contain water areas instead of land areas")
	f.StringVar(&a.area, "area", "", "area file (default: input with the area extension)")
	f.StringVar(&a.output, "output", "", "output mask (default: input with the output extension)")
	f.StringVar(&a.progress, "progress", "", "progress display: auto, tui, plain, none")

	cmd.AddCommand(newViewCmd(a), newQueryCmd(a))
	return cmd
}

package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"shapemask/internal/mskfile"
	"shapemask/internal/tui"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [FILE.msk]",
		Short: "Browse mask files in an interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m tea.Model
			if len(args) > 0 {
				m = tui.NewWithPath(args[0], a.cfg.OutputExt)
			} else {
				m = tui.New(a.cfg.OutputExt)
			}
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
			return err
		},
	}
}

func newQueryCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query FILE.msk LON LAT",
		Short: "Print land or water for one point",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return usageError{fmt.Errorf("longitude %q: %w", args[1], err)}
			}
			lat, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return usageError{fmt.Errorf("latitude %q: %w", args[2], err)}
			}
			m, err := mskfile.Read(args[0])
			if err != nil {
				return err
			}
			land, ok := m.Lookup(lon, lat)
			if !ok {
				return fmt.Errorf("%.6f %.6f is outside %s", lon, lat, args[0])
			}
			if land {
				fmt.Fprintln(cmd.OutOrStdout(), "land")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "water")
			}
			return nil
		},
	}
	// negative coordinates are arguments, not flags
	cmd.Flags().SetInterspersed(false)
	return cmd
}

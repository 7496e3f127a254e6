// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ik5/audprep/filestats"
)

func newStatsCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <dir>",
		Short: "List duration and sample rate of every audio file in a tree",
		Long: `Walks <dir> and prints one row per audio file: its parent directory,
file name, duration in seconds and sample rate. The label column is named
sample_utterance when <dir> contains the marker, sample_speaker otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cc.cfg.Stats

			table, err := filestats.Scan(cmd.Context(), args[0],
				filestats.WithExtensions(cfg.Extensions...),
				filestats.WithMarker(cfg.Marker),
			)
			if err != nil {
				return err
			}

			return writeTable(cmd.OutOrStdout(), table, cfg.Format)
		},
	}

	cmd.Flags().StringSlice("ext", []string{".wav"}, "File extensions to include")
	cmd.Flags().String("marker", filestats.DefaultMarker, "Path substring marking an utterance-organised tree")
	cmd.Flags().String("format", "auto", "Output: auto, table, csv, json or yaml")

	return cmd
}

func writeTable(w io.Writer, table *filestats.Table, format string) error {
	if format == "auto" {
		format = "csv"
		if isTerminal(w) {
			format = "table"
		}
	}

	switch format {
	case "table":
		table.Render(w)
		return nil
	case "csv":
		return table.WriteCSV(w)
	case "json":
		return table.WriteJSON(w)
	case "yaml":
		return table.WriteYAML(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

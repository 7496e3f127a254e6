// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ik5/audprep/dataset"
	"github.com/ik5/audprep/dataset/h5"
)

func newSplitCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <record>",
		Short: "Split a feature record into train, validation and test sets",
		Long: `Loads one feature set from a JSON or HDF5 record and splits it in two
stages: --test is carved from the whole set, then --val is carved from what
is left. --val is a share of the remainder, not of the whole set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cc.cfg.Split

			feature, err := dataset.ParseFeature(cfg.Feature)
			if err != nil {
				return err
			}

			var opts []dataset.SplitOption
			if cfg.Seed != 0 {
				opts = append(opts, dataset.WithSeed(cfg.Seed))
			}

			parts, err := splitRecord(args[0], feature, cfg.Test, cfg.Val, opts)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out != "" {
				if err := h5.WritePartitions(out, parts); err != nil {
					return err
				}
			}

			renderPartitions(cmd.OutOrStdout(), parts)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("feature", string(dataset.MFCCs), "Feature set: MFCCs or mel_specs")
	f.Float64("test", 0.2, "Share of the whole set used for test")
	f.Float64("val", 0.2, "Share of the remainder (after test) used for validation")
	f.Uint64("seed", 0, "Shuffle seed; 0 picks a random one")
	f.String("out", "", "Write the partitions to this HDF5 file")

	return cmd
}

func splitRecord(path string, feature dataset.Feature, test, val float64, opts []dataset.SplitOption) (*dataset.Partitions, error) {
	if !isHDF5(path) {
		return dataset.CreateTrainTest(path, feature, test, val, opts...)
	}

	ds, err := h5.Load(path, feature)
	if err != nil {
		return nil, err
	}
	parts, err := dataset.SplitThreeWay(ds, test, val, opts...)
	if err != nil {
		return nil, err
	}
	parts.ExpandDims()

	return parts, nil
}

func isHDF5(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h5", ".hdf5":
		return true
	}
	return false
}

func renderPartitions(w io.Writer, parts *dataset.Partitions) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"partition", "samples", "shape"})
	tw.AppendRow(table.Row{"train", parts.Train.Len(), fmt.Sprint(parts.Train.X.Shape)})
	tw.AppendRow(table.Row{"val", parts.Val.Len(), fmt.Sprint(parts.Val.X.Shape)})
	tw.AppendRow(table.Row{"test", parts.Test.Len(), fmt.Sprint(parts.Test.X.Shape)})
	tw.Render()
}

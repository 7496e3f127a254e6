// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audprep/features"
)

func newFeaturesCommand(cc *commandContext) *cobra.Command {
	defaults := features.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "features <dir> <out.json>",
		Short: "Extract MFCCs and mel spectrograms into a JSON record",
		Long: `Computes features for every supported file under <dir>, labelling each
by its parent directory, and writes the record that split reads.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := features.BuildRecord(cmd.Context(), args[0], nil, cc.cfg.Features.Extractor())
			if err != nil {
				return err
			}
			if err := rec.WriteFile(args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d samples in %d classes written to %s\n",
				len(rec.Labels), len(rec.Mapping), args[1])
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("rate", defaults.SampleRate, "Sample rate the audio is resampled to")
	f.Int("clip", defaults.ClipSamples, "Clip length in samples; shorter audio is zero padded")
	f.Int("nfft", defaults.NFFT, "STFT window length")
	f.Int("hop", defaults.HopLength, "STFT hop length")
	f.Int("mels", defaults.NumMels, "Number of mel bands")
	f.Int("mfcc", defaults.NumMFCC, "Number of MFCCs")

	return cmd
}

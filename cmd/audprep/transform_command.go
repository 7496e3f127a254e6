// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audprep/transform"
)

func newTransformCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform <src> [dst]",
		Short: "Rewrite a recording tree as mono PCM16 WAV grouped by utterance",
		Long: `Decodes every supported file under <src>, resamples it to --rate, mixes
it down to mono and writes <dst>/<utterance>/<name>.wav. The utterance is
the part of the file name before the first underscore. [dst] defaults to
<src>_transformed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			dst := transform.DefaultDestination(src)
			if len(args) == 2 {
				dst = args[1]
			}

			cfg := cc.cfg.Transform
			report, err := transform.Run(cmd.Context(), src, dst,
				transform.WithSampleRate(cfg.SampleRate),
				transform.WithBufferSize(cfg.BufferSize),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d files written to %s (%d skipped, %d unsupported)\n",
				report.Written, dst, len(report.Skipped), report.Unsupported)
			return nil
		},
	}

	cmd.Flags().Int("rate", transform.DefaultSampleRate, "Output sample rate in Hz")

	return cmd
}

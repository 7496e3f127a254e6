// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ik5/audprep/internal/config"
	"github.com/ik5/audprep/internal/logging"
)

// flagKeys maps config keys to the flags that may override them.
var flagKeys = map[string]string{
	"log.level":             "log-level",
	"log.format":            "log-format",
	"stats.extensions":      "ext",
	"stats.marker":          "marker",
	"stats.format":          "format",
	"transform.sample_rate": "rate",
	"features.sample_rate":  "rate",
	"features.clip_samples": "clip",
	"features.nfft":         "nfft",
	"features.hop_length":   "hop",
	"features.num_mels":     "mels",
	"features.num_mfcc":     "mfcc",
	"split.feature":         "feature",
	"split.test":            "test",
	"split.val":             "val",
	"split.seed":            "seed",
}

type commandContext struct {
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "audprep",
		Short:         "Audio dataset preparation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cc.configPath, cmd.Flags(), flagKeys)
			if err != nil {
				return err
			}
			if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
				return err
			}
			cc.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cc.configPath, "config", "c", "", "Configuration file (default ./audprep.yaml)")
	pf.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(newStatsCommand(cc))
	rootCmd.AddCommand(newTransformCommand(cc))
	rootCmd.AddCommand(newFeaturesCommand(cc))
	rootCmd.AddCommand(newSplitCommand(cc))

	return rootCmd
}

// SPDX-License-Identifier: EPL-2.0

// Package config loads audprep settings from defaults, an optional YAML
// file, AUDPREP_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ik5/audprep/dataset"
	"github.com/ik5/audprep/features"
	"github.com/ik5/audprep/filestats"
	"github.com/ik5/audprep/transform"
)

const (
	// FileName is looked up in the working directory and the user config
	// directory when no explicit file is given.
	FileName  = "audprep"
	EnvPrefix = "AUDPREP"
)

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Stats struct {
	Extensions []string `mapstructure:"extensions"`
	Marker     string   `mapstructure:"marker"`
	Format     string   `mapstructure:"format"`
}

type Transform struct {
	SampleRate int `mapstructure:"sample_rate"`
	BufferSize int `mapstructure:"buffer_size"`
}

type Features struct {
	SampleRate  int     `mapstructure:"sample_rate"`
	ClipSamples int     `mapstructure:"clip_samples"`
	NFFT        int     `mapstructure:"nfft"`
	HopLength   int     `mapstructure:"hop_length"`
	NumMels     int     `mapstructure:"num_mels"`
	NumMFCC     int     `mapstructure:"num_mfcc"`
	FMin        float64 `mapstructure:"fmin"`
	FMax        float64 `mapstructure:"fmax"`
}

type Split struct {
	Feature string  `mapstructure:"feature"`
	Test    float64 `mapstructure:"test"`
	Val     float64 `mapstructure:"val"`
	Seed    uint64  `mapstructure:"seed"`
}

type Config struct {
	Log       Log       `mapstructure:"log"`
	Stats     Stats     `mapstructure:"stats"`
	Transform Transform `mapstructure:"transform"`
	Features  Features  `mapstructure:"features"`
	Split     Split     `mapstructure:"split"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// Extractor converts the feature section for package features.
func (f Features) Extractor() features.Config {
	return features.Config(f)
}

func setDefaults(v *viper.Viper) {
	fc := features.DefaultConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("stats.extensions", []string{".wav"})
	v.SetDefault("stats.marker", filestats.DefaultMarker)
	v.SetDefault("stats.format", "auto")

	v.SetDefault("transform.sample_rate", transform.DefaultSampleRate)
	v.SetDefault("transform.buffer_size", 4096)

	v.SetDefault("features.sample_rate", fc.SampleRate)
	v.SetDefault("features.clip_samples", fc.ClipSamples)
	v.SetDefault("features.nfft", fc.NFFT)
	v.SetDefault("features.hop_length", fc.HopLength)
	v.SetDefault("features.num_mels", fc.NumMels)
	v.SetDefault("features.num_mfcc", fc.NumMFCC)
	v.SetDefault("features.fmin", fc.FMin)
	v.SetDefault("features.fmax", fc.FMax)

	v.SetDefault("split.feature", string(dataset.MFCCs))
	v.SetDefault("split.test", 0.2)
	v.SetDefault("split.val", 0.2)
	v.SetDefault("split.seed", 0)
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path, or searches for audprep.yaml when path is empty, and
// layers the environment and the given flags on top. flags maps config
// keys such as "split.test" to flag names; unknown or unset flags are
// ignored.
func Load(path string, fs *pflag.FlagSet, flags map[string]string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if fs != nil {
		for key, name := range flags {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()

	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

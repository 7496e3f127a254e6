// SPDX-License-Identifier: EPL-2.0

package filestats

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ik5/audprep"
	"github.com/ik5/audprep/audio"
)

// Prober describes one audio file. *audio.Registry satisfies it.
type Prober interface {
	ProbeFile(path string) (audio.Info, error)
}

type options struct {
	extensions map[string]struct{}
	marker     string
	prober     Prober
}

// Option configures Scan.
type Option func(*options)

// WithExtensions replaces the set of file extensions to scan. Matching is
// case-insensitive and the leading dot is optional.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			o.extensions[ext] = struct{}{}
		}
	}
}

// WithMarker sets the substring that marks an utterance-organised tree.
func WithMarker(marker string) Option {
	return func(o *options) { o.marker = marker }
}

// WithProber replaces the default registry.
func WithProber(p Prober) Option {
	return func(o *options) { o.prober = p }
}

// Scan walks root and probes every file with a selected extension, one Row
// per file in traversal order. The first file that cannot be probed aborts
// the scan.
func Scan(ctx context.Context, root string, opts ...Option) (*Table, error) {
	o := &options{marker: DefaultMarker}
	WithExtensions(audprep.DefaultExtensions...)(o)
	for _, opt := range opts {
		opt(o)
	}
	if o.prober == nil {
		o.prober = audprep.NewRegistry()
	}

	table := NewTable(LabelColumn(root, o.marker))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := o.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		regular, err := isRegular(path, d)
		if err != nil {
			return err
		}
		if !regular {
			return nil
		}

		info, err := o.prober.ProbeFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		row := Row{
			Label:      filepath.Base(filepath.Dir(path)),
			Filename:   d.Name(),
			Duration:   info.Duration(),
			SampleRate: info.SampleRate,
		}
		table.Rows = append(table.Rows, row)

		log.WithFields(log.Fields{
			"file":       path,
			"duration":   row.Duration,
			"samplerate": row.SampleRate,
		}).Debug("probed audio file")

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"root":  root,
		"files": len(table.Rows),
		"label": table.Columns[0],
	}).Info("collected file statistics")

	return table, nil
}

// LabelColumn names the label column for a tree rooted at root: trees whose
// path contains marker are organised by utterance, the rest by speaker.
func LabelColumn(root, marker string) string {
	if marker != "" && strings.Contains(root, marker) {
		return ColumnUtterance
	}

	return ColumnSpeaker
}

// isRegular follows symlinks, as opening the file would.
func isRegular(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	return fi.Mode().IsRegular(), nil
}

// SPDX-License-Identifier: EPL-2.0

package filestats

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/internal/audiotest"
)

type stubProber struct {
	infos map[string]audio.Info
	err   error
}

func (s stubProber) ProbeFile(path string) (audio.Info, error) {
	if s.err != nil {
		return audio.Info{}, s.err
	}
	return s.infos[filepath.Base(path)], nil
}

func buildRawTree(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "recordings")
	audiotest.WriteWAVFile(t, root, "jackson/0_jackson_0.wav", 8000, 4000)
	audiotest.WriteWAVFile(t, root, "jackson/1_jackson_0.wav", 8000, 8000)
	audiotest.WriteWAVFile(t, root, "theo/0_theo_0.wav", 16000, 4000)
	audiotest.WriteWAVFile(t, root, "theo/nested/deeper/2_theo_5.wav", 8000, 2000)
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.txt"), []byte("notes"), 0o644))

	return root
}

func TestScan_RowPerFile(t *testing.T) {
	t.Parallel()

	root := buildRawTree(t)

	table, err := Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, table.Rows, 4)
	require.Equal(t, [4]string{ColumnSpeaker, ColumnFilename, ColumnDuration, ColumnSampleRate}, table.Columns)

	byName := make(map[string]Row)
	for _, r := range table.Rows {
		byName[r.Filename] = r
	}

	require.Equal(t, Row{Label: "jackson", Filename: "0_jackson_0.wav", Duration: 0.5, SampleRate: 8000}, byName["0_jackson_0.wav"])
	require.Equal(t, Row{Label: "jackson", Filename: "1_jackson_0.wav", Duration: 1, SampleRate: 8000}, byName["1_jackson_0.wav"])
	require.Equal(t, Row{Label: "theo", Filename: "0_theo_0.wav", Duration: 0.25, SampleRate: 16000}, byName["0_theo_0.wav"])
	require.Equal(t, "deeper", byName["2_theo_5.wav"].Label)
}

func TestScan_FloatWAV(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "recordings")
	audiotest.WriteWAVFile(t, root, "jackson/0_jackson_0.wav", 8000, 4000)
	float := filepath.Join(root, "nicolas", "3_nicolas_1.wav")
	require.NoError(t, os.MkdirAll(filepath.Dir(float), 0o755))
	require.NoError(t, os.WriteFile(float, audiotest.WAVFloat32(16000, 1, make([]float32, 8000)), 0o644))

	table, err := Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	byName := make(map[string]Row)
	for _, r := range table.Rows {
		byName[r.Filename] = r
	}
	require.Equal(t, Row{Label: "nicolas", Filename: "3_nicolas_1.wav", Duration: 0.5, SampleRate: 16000}, byName["3_nicolas_1.wav"])
}

func TestScan_TransformedTreeUsesUtteranceColumn(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "recordings_transformed")
	audiotest.WriteWAVFile(t, root, "0/0_jackson_0.wav", 8000, 800)
	audiotest.WriteWAVFile(t, root, "1/1_jackson_0.wav", 8000, 800)

	table, err := Scan(context.Background(), root)
	require.NoError(t, err)

	require.Equal(t, ColumnUtterance, table.Columns[0])
	labels := []string{table.Rows[0].Label, table.Rows[1].Label}
	sort.Strings(labels)
	require.Equal(t, []string{"0", "1"}, labels)
}

func TestLabelColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		root   string
		marker string
		want   string
	}{
		{"data/recordings", DefaultMarker, ColumnSpeaker},
		{"data/recordings_transformed", DefaultMarker, ColumnUtterance},
		{"data/recordings_transformed/0", DefaultMarker, ColumnUtterance},
		{"data/_transformed_old/x", DefaultMarker, ColumnUtterance},
		{"data/recordings-transformed", DefaultMarker, ColumnSpeaker},
		{"data/by_digit", "by_digit", ColumnUtterance},
		{"data/recordings_transformed", "", ColumnSpeaker},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, LabelColumn(tt.root, tt.marker), "LabelColumn(%q, %q)", tt.root, tt.marker)
	}
}

func TestScan_Extensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a/x.wav", "a/y.WAV", "a/z.mp3", "b/w.ogg", "b/v.txt"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	prober := stubProber{infos: map[string]audio.Info{}}

	table, err := Scan(context.Background(), root, WithProber(prober))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2, "default selects .wav only, case-insensitively")

	table, err = Scan(context.Background(), root, WithProber(prober), WithExtensions("mp3", ".ogg"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
}

func TestScan_ProbeFailureAborts(t *testing.T) {
	t.Parallel()

	root := buildRawTree(t)
	probeErr := errors.New("corrupt header")

	_, err := Scan(context.Background(), root, WithProber(stubProber{err: probeErr}))
	require.ErrorIs(t, err, probeErr)
}

func TestScan_CorruptFileAborts(t *testing.T) {
	t.Parallel()

	root := buildRawTree(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "theo", "broken.wav"), []byte("garbage"), 0o644))

	_, err := Scan(context.Background(), root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.wav")
}

func TestScan_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_EmptyTree(t *testing.T) {
	t.Parallel()

	table, err := Scan(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, table.Rows)
}

func TestScan_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, buildRawTree(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestScan_FollowsFileSymlinks(t *testing.T) {
	t.Parallel()

	root := buildRawTree(t)
	target := filepath.Join(root, "jackson", "0_jackson_0.wav")
	require.NoError(t, os.Symlink(target, filepath.Join(root, "theo", "linked.wav")))

	table, err := Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, table.Rows, 5)
}

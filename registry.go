// SPDX-License-Identifier: EPL-2.0

package audprep

import (
	"github.com/ik5/audprep/audio"
	"github.com/ik5/audprep/formats/aiff"
	"github.com/ik5/audprep/formats/mp3"
	"github.com/ik5/audprep/formats/vorbis"
	"github.com/ik5/audprep/formats/wav"
)

// DefaultExtensions are the files a statistics scan picks up when nothing
// else is configured.
var DefaultExtensions = []string{".wav"}

// NewRegistry returns a registry with every bundled format registered under
// its usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

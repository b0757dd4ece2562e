// ABOUTME: MP3 audio decoder
// ABOUTME: Decodes MP3 through go-mp3, which always yields 16-bit stereo
package decode

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// MP3Reader decodes MP3 audio
type MP3Reader struct {
	*PCMReader
	decoder *mp3.Decoder
}

// NewMP3 creates an MP3 reader over r
func NewMP3(r io.Reader) (*MP3Reader, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	// go-mp3 emits interleaved stereo 16-bit little-endian PCM
	pcm, err := NewPCM(decoder, audio.Format{
		Codec:      "pcm",
		SampleRate: decoder.SampleRate(),
		Channels:   2,
		BitDepth:   16,
	})
	if err != nil {
		return nil, err
	}
	pcm.closer = closerOf(r)

	return &MP3Reader{PCMReader: pcm, decoder: decoder}, nil
}

// Format reports the decoded layout with the mp3 codec name
func (d *MP3Reader) Format() audio.Format {
	f := d.PCMReader.Format()
	f.Codec = "mp3"
	return f
}

// Length returns the decoded stream length in samples, or -1 if unknown
func (d *MP3Reader) Length() int64 {
	n := d.decoder.Length()
	if n < 0 {
		return -1
	}
	return n / 2
}

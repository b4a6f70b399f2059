package audio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes interleaved 16-bit samples as a PCM WAV file at path.
func WriteWAV(path string, samples []int16, spec WAVSpec) error {
	if spec.SampleRate <= 0 || spec.Channels <= 0 {
		return fmt.Errorf("invalid wav spec %s", spec)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav %q: %w", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, spec.SampleRate, 16, spec.Channels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: spec.Channels,
			SampleRate:  spec.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode wav %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav %q: %w", path, err)
	}
	return nil
}

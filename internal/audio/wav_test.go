package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

func TestWriteWAVRoundTripsSamplesAndSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recording.wav")
	samples := []int16{0, 1200, -1200, 32767, -32768, 7}
	spec := WAVSpec{SampleRate: 48000, Channels: 2, BitsPerSample: 16}

	require.NoError(t, WriteWAV(path, samples, spec))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	require.Equal(t, uint32(48000), dec.SampleRate)
	require.Equal(t, uint16(2), dec.NumChans)
	require.Equal(t, uint16(16), dec.BitDepth)
	require.Equal(t, []int{0, 1200, -1200, 32767, -32768, 7}, buf.Data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(WAVHeaderSize+2*len(samples)), info.Size())
}

func TestWriteWAVRejectsInvalidSpec(t *testing.T) {
	err := WriteWAV(filepath.Join(t.TempDir(), "bad.wav"), []int16{1}, WAVSpec{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid wav spec")
}

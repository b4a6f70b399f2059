package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

// SampleFormat is the frame encoding delivered by the device callback.
type SampleFormat int

const (
	SampleFormatS16 SampleFormat = iota + 1
	SampleFormatF32
)

// Buffer is the recording gate plus the shared sample buffer. The device
// callback writes; the event loop begins and ends recordings.
type Buffer struct {
	gate atomic.Bool

	mu      sync.Mutex
	samples []int16
}

// Begin clears the buffer, then opens the gate.
func (b *Buffer) Begin() {
	b.mu.Lock()
	b.samples = b.samples[:0]
	b.mu.Unlock()
	b.gate.Store(true)
}

// End closes the gate, then returns a copy of everything captured since Begin.
func (b *Buffer) End() []int16 {
	b.gate.Store(false)

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int16, len(b.samples))
	copy(out, b.samples)
	return out
}

// Recording reports the gate state.
func (b *Buffer) Recording() bool {
	return b.gate.Load()
}

// Write appends little-endian frames in the given format while the gate is open.
func (b *Buffer) Write(format SampleFormat, data []byte) {
	if !b.gate.Load() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// End may have closed the gate while we waited for the lock.
	if !b.gate.Load() {
		return
	}

	switch format {
	case SampleFormatS16:
		for i := 0; i+1 < len(data); i += 2 {
			b.samples = append(b.samples, int16(binary.LittleEndian.Uint16(data[i:])))
		}
	case SampleFormatF32:
		for i := 0; i+3 < len(data); i += 4 {
			b.samples = append(b.samples, f32ToS16(math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))))
		}
	}
}

// f32ToS16 clips to [-1, 1] and scales to i16 full scale.
func f32ToS16(sample float32) int16 {
	if math.IsNaN(float64(sample)) {
		return 0
	}
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	return int16(sample * math.MaxInt16)
}

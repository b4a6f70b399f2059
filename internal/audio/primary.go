package audio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

// Primary captures from the default input device through a miniaudio data
// callback. The device stream runs for the process lifetime; the gate decides
// which frames are kept.
type Primary struct {
	logger *slog.Logger

	ctx    *malgo.AllocatedContext
	device *malgo.Device

	name    string
	format  SampleFormat
	spec    WAVSpec
	buffer  Buffer
	closing atomic.Bool
}

// NewPrimary opens the default capture device at its native rate, channel
// count, and sample format, and starts its stream.
func NewPrimary(logger *slog.Logger) (*Primary, error) {
	p := &Primary{logger: logger}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		p.logDebug("miniaudio", "message", strings.TrimSpace(message))
	})
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	p.ctx = mctx
	p.name = defaultCaptureName(mctx)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatUnknown
	deviceConfig.Capture.Channels = 0
	deviceConfig.SampleRate = 0

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			p.buffer.Write(p.format, input)
		},
		Stop: func() {
			if !p.closing.Load() && p.logger != nil {
				p.logger.Warn("capture device stopped unexpectedly", "device", p.name)
			}
		},
	}

	device, err := malgo.InitDevice(mctx.Context, deviceConfig, callbacks)
	if err != nil {
		p.closeContext()
		return nil, fmt.Errorf("open default capture device: %w", err)
	}
	p.device = device

	format, err := sampleFormat(device.CaptureFormat())
	if err != nil {
		device.Uninit()
		p.closeContext()
		return nil, err
	}
	p.format = format
	p.spec = WAVSpec{
		SampleRate:    int(device.SampleRate()),
		Channels:      int(device.CaptureChannels()),
		BitsPerSample: 16,
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		p.closeContext()
		return nil, fmt.Errorf("start capture stream: %w", err)
	}

	return p, nil
}

func (p *Primary) Mode() Mode {
	return ModePrimary
}

// DeviceName is the human-readable name of the default capture device.
func (p *Primary) DeviceName() string {
	return p.name
}

// Spec is the WAV layout of recordings produced by this device.
func (p *Primary) Spec() WAVSpec {
	return p.spec
}

func (p *Primary) Recording() bool {
	return p.buffer.Recording()
}

func (p *Primary) Start(context.Context) error {
	if p.buffer.Recording() {
		return nil
	}
	p.buffer.Begin()
	return nil
}

func (p *Primary) Stop(context.Context) (Artifact, error) {
	samples := p.buffer.End()
	if len(samples) == 0 {
		return Artifact{}, ErrEmptyRecording
	}
	return Artifact{Samples: samples, Spec: p.spec}, nil
}

func (p *Primary) Close() error {
	p.closing.Store(true)
	if p.device != nil {
		p.device.Uninit()
		p.device = nil
	}
	p.closeContext()
	return nil
}

func (p *Primary) closeContext() {
	if p.ctx == nil {
		return
	}
	_ = p.ctx.Uninit()
	p.ctx.Free()
	p.ctx = nil
}

func (p *Primary) logDebug(msg string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Debug(msg, args...)
}

func sampleFormat(format malgo.FormatType) (SampleFormat, error) {
	switch format {
	case malgo.FormatS16:
		return SampleFormatS16, nil
	case malgo.FormatF32:
		return SampleFormatF32, nil
	default:
		return 0, fmt.Errorf("%w: miniaudio format %d", ErrUnsupportedFormat, format)
	}
}

func defaultCaptureName(mctx *malgo.AllocatedContext) string {
	devices, err := mctx.Devices(malgo.Capture)
	if err != nil {
		return "default"
	}
	for _, d := range devices {
		if d.IsDefault != 0 {
			return d.Name()
		}
	}
	return "default"
}

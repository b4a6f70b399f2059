package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Source describes one PulseAudio/PipeWire input source.
type Source struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// ListSources returns input sources known to the Pulse server with default/availability metadata.
func ListSources(_ context.Context) ([]Source, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("voice-ptt"),
		pulse.ClientApplicationIconName("audio-input-microphone"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	defaultSource, err := client.DefaultSource()
	if err != nil {
		return nil, fmt.Errorf("read default source: %w", err)
	}
	defaultID := defaultSource.ID()

	var sourceInfos pulseproto.GetSourceInfoListReply
	if err := client.RawRequest(&pulseproto.GetSourceInfoList{}, &sourceInfos); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	sources := make([]Source, 0, len(sourceInfos))
	for _, info := range sourceInfos {
		if info == nil {
			continue
		}
		sources = append(sources, Source{
			ID:          info.SourceName,
			Description: info.Device,
			State:       sourceStateString(info.State),
			Available:   sourceAvailable(info),
			Muted:       info.Mute,
			Default:     info.SourceName == defaultID,
		})
	}
	return sources, nil
}

// DefaultSource returns the server's default input source.
func DefaultSource(ctx context.Context) (Source, error) {
	sources, err := ListSources(ctx)
	if err != nil {
		return Source{}, err
	}
	return pickDefault(sources)
}

func pickDefault(sources []Source) (Source, error) {
	for _, source := range sources {
		if source.Default {
			return source, nil
		}
	}
	return Source{}, errors.New("default audio source is unavailable")
}

// sourceStateString maps Pulse source state constants to human-readable values.
func sourceStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sourceAvailable maps Pulse source port availability to a simple boolean.
func sourceAvailable(source *pulseproto.GetSourceInfoReply) bool {
	if source == nil {
		return false
	}
	if len(source.Ports) == 0 {
		return true
	}
	for _, port := range source.Ports {
		if port.Name != source.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}

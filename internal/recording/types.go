package recording

import (
	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
)

// DefaultSampleRate is assumed when the file metadata does not declare one.
const DefaultSampleRate = 200.0

// Channel is one amplitude column of a recording.
type Channel struct {
	Name     string
	Unit     classify.Unit
	Category classify.Category
	Samples  []float64
}

// Recording is a parsed dataset: a shared time axis plus one sample sequence
// per channel, all of equal length. It is built once by Load and read-only
// afterwards.
type Recording struct {
	Path       string
	SampleRate float64
	// RateDeclared is true when the file metadata carried the sample rate,
	// as opposed to the assumed default.
	RateDeclared bool
	Time         []float64
	Channels     []Channel
}

// ApplyFallbackRate overrides the assumed sample rate with a configured one.
// A rate declared in the file metadata always wins.
func (r *Recording) ApplyFallbackRate(rate float64) {
	if r.RateDeclared || rate <= 0 {
		return
	}
	r.SampleRate = rate
}

// ChannelNames returns channel names in header order.
func (r *Recording) ChannelNames() []string {
	names := make([]string, len(r.Channels))
	for i, ch := range r.Channels {
		names[i] = ch.Name
	}
	return names
}

// Channel looks a channel up by name.
func (r *Recording) Channel(name string) (*Channel, bool) {
	for i := range r.Channels {
		if r.Channels[i].Name == name {
			return &r.Channels[i], true
		}
	}
	return nil, false
}

// Duration returns the time span of the recording in seconds.
func (r *Recording) Duration() float64 {
	if len(r.Time) == 0 {
		return 0
	}
	return r.Time[len(r.Time)-1] - r.Time[0]
}

// SampleCount returns the number of samples per channel.
func (r *Recording) SampleCount() int {
	return len(r.Time)
}

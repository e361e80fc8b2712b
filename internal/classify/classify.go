package classify

import (
	"math"
	"strings"
)

// Category is the signal class assigned to a channel.
type Category string

const (
	EEG       Category = "eeg"
	ECG       Category = "ecg"
	Reference Category = "reference"
)

func (c Category) String() string { return string(c) }

// Unit is the amplitude unit a channel is recorded in.
type Unit string

const (
	Microvolt   Unit = "µV"
	Millivolt   Unit = "mV"
	UnitUnknown Unit = ""
)

// ECG channels at microvolt scale sit well above typical EEG amplitudes.
const ecgAmplitudeThreshold = 1000.0

// ecgNameTokens mark eye/cardiac leads regardless of unit labeling.
var ecgNameTokens = []string{"X1_LEOG", "X2_REOG"}

// UnitOf extracts a unit token from a channel name such as "Ch1_uV",
// "Ch2_mV" or "Fp1 (uV)". Returns UnitUnknown when the name carries none.
func UnitOf(name string) Unit {
	lower := strings.ToLower(name)
	for _, suffix := range []string{"_uv", "(uv)", "(µv)", "_µv"} {
		if strings.HasSuffix(lower, suffix) {
			return Microvolt
		}
	}
	for _, suffix := range []string{"_mv", "(mv)"} {
		if strings.HasSuffix(lower, suffix) {
			return Millivolt
		}
	}
	return UnitUnknown
}

// Categorize assigns a channel to EEG, ECG or Reference from its name and,
// when the name carries no unit token, its observed amplitude. Channels that
// cannot be resolved default to EEG.
func Categorize(name string, samples []float64) Category {
	for _, tok := range ecgNameTokens {
		if strings.Contains(name, tok) {
			return ECG
		}
	}
	if strings.Contains(name, "CM") || strings.Contains(strings.ToLower(name), "ref") {
		return Reference
	}
	switch UnitOf(name) {
	case Millivolt:
		return ECG
	case Microvolt:
		return EEG
	}
	if meanAbs(samples) >= ecgAmplitudeThreshold {
		return ECG
	}
	return EEG
}

// UnitFor resolves the unit a channel is reported in: the name token when
// present, otherwise the conventional unit for its category.
func UnitFor(name string, cat Category) Unit {
	if u := UnitOf(name); u != UnitUnknown {
		return u
	}
	if cat == ECG {
		return Millivolt
	}
	return Microvolt
}

func meanAbs(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += math.Abs(v)
	}
	return sum / float64(len(samples))
}

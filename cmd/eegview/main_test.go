package main

import (
	"testing"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

func TestMarkWindowDefaultsToTimeBounds(t *testing.T) {
	// Time axis starting past zero: defaults must track the data range,
	// not [0, duration].
	rec := &recording.Recording{
		Time: []float64{0.5, 1.0, 2.5},
	}

	from, to, err := markWindow(rec, 0, 0, false, false)
	if err != nil {
		t.Fatalf("markWindow: %v", err)
	}
	if from != 0.5 {
		t.Errorf("expected default start 0.5, got %f", from)
	}
	if to != 2.5 {
		t.Errorf("expected default end 2.5, got %f", to)
	}
}

func TestMarkWindowKeepsExplicitFlags(t *testing.T) {
	rec := &recording.Recording{
		Time: []float64{0.5, 1.0, 2.5},
	}

	from, to, err := markWindow(rec, 1.0, 2.0, true, true)
	if err != nil {
		t.Fatalf("markWindow: %v", err)
	}
	if from != 1.0 || to != 2.0 {
		t.Errorf("explicit flags must pass through, got [%f,%f]", from, to)
	}
}

func TestMarkWindowEmptyRecording(t *testing.T) {
	rec := &recording.Recording{Time: []float64{}}
	if _, _, err := markWindow(rec, 0, 0, false, false); err == nil {
		t.Error("expected error for empty recording")
	}
}

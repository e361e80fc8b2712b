package classify

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		channel  string
		samples  []float64
		expected Category
	}{
		{"microvolt token", "Ch1_uV", nil, EEG},
		{"millivolt token", "Ch2_mV", nil, ECG},
		{"parenthesized unit", "Fp1 (uV)", nil, EEG},
		{"left eog lead", "X1_LEOG", nil, ECG},
		{"right eog lead", "X2_REOG_mV", nil, ECG},
		{"common mode", "CM", nil, Reference},
		{"explicit reference", "A1_ref", nil, Reference},
		{"plain eeg name", "Fp1", []float64{10, -12, 8}, EEG},
		{"large amplitude no token", "LeadII", []float64{1500, -1400, 1600}, ECG},
		{"no unit no samples defaults eeg", "Fz", nil, EEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.channel, tt.samples)
			if got != tt.expected {
				t.Errorf("Categorize(%q) = %s, want %s", tt.channel, got, tt.expected)
			}
			// Pure function: a second call must agree.
			if again := Categorize(tt.channel, tt.samples); again != got {
				t.Errorf("Categorize(%q) not deterministic: %s then %s", tt.channel, got, again)
			}
		})
	}
}

func TestUnitOf(t *testing.T) {
	tests := []struct {
		channel  string
		expected Unit
	}{
		{"Ch1_uV", Microvolt},
		{"Ch2_mV", Millivolt},
		{"Fp1 (uV)", Microvolt},
		{"Lead (mV)", Millivolt},
		{"Fp1", UnitUnknown},
	}
	for _, tt := range tests {
		if got := UnitOf(tt.channel); got != tt.expected {
			t.Errorf("UnitOf(%q) = %q, want %q", tt.channel, got, tt.expected)
		}
	}
}

func TestUnitFor(t *testing.T) {
	if got := UnitFor("Fp1", EEG); got != Microvolt {
		t.Errorf("EEG fallback unit = %q, want µV", got)
	}
	if got := UnitFor("X1_LEOG", ECG); got != Millivolt {
		t.Errorf("ECG fallback unit = %q, want mV", got)
	}
	if got := UnitFor("Ch_mV", EEG); got != Millivolt {
		t.Errorf("name token must win, got %q", got)
	}
}

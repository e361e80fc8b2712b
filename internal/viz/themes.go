package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the terminal viewer.
type Theme struct {
	Name      string
	Header    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	EEG       lipgloss.Color
	ECG       lipgloss.Color
	Reference lipgloss.Color
}

var (
	ThemeClinical = Theme{
		Name:      "clinical",
		Header:    lipgloss.Color("86"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("240"),
		Accent:    lipgloss.Color("205"),
		EEG:       lipgloss.Color("39"),
		ECG:       lipgloss.Color("203"),
		Reference: lipgloss.Color("245"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Header:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#88ff88"),
		EEG:       lipgloss.Color("#00cc00"),
		ECG:       lipgloss.Color("#88ff88"),
		Reference: lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Header:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Accent:    lipgloss.Color("#0088ff"),
		EEG:       lipgloss.Color("#cccccc"),
		ECG:       lipgloss.Color("#ffffff"),
		Reference: lipgloss.Color("#888888"),
	}

	CurrentTheme = ThemeClinical

	Themes = []Theme{ThemeClinical, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to clinical.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClinical
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

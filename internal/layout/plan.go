// Package layout turns a Recording into a stacked per-channel subplot plan.
// The plan is pure data: the terminal viewer, the HTTP session and the SVG
// exporter all render from it.
package layout

import (
	"fmt"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

const (
	// DefaultRowHeight is the fixed subplot height in pixels.
	DefaultRowHeight = 150

	// ChromeHeight is the extra figure height reserved for title and axis.
	ChromeHeight = 100

	// DefaultMaxRows caps how many channels a single figure shows.
	DefaultMaxRows = 30

	// SharedAxisGroup is the axis group id every row is tagged with so the
	// presentation layer keeps pan/zoom synchronized across rows.
	SharedAxisGroup = "x"
)

// Options control plan construction. The zero value is usable.
type Options struct {
	RowHeight  int  // pixels per row, DefaultRowHeight when <= 0
	MaxRows    int  // channel cap, DefaultMaxRows when <= 0
	ByCategory bool // order rows EEG, ECG, Reference instead of header order
}

// Row assigns one channel to one subplot.
type Row struct {
	Channel   string            `json:"channel"`
	Label     string            `json:"label"`
	Unit      classify.Unit     `json:"unit"`
	Category  classify.Category `json:"category"`
	HeightPx  int               `json:"height_px"`
	AxisGroup string            `json:"axis_group"`
}

// Plan is the computed figure layout for a recording.
type Plan struct {
	AxisGroup   string `json:"axis_group"`
	RowHeight   int    `json:"row_height"`
	TotalHeight int    `json:"total_height"`
	Rows        []Row  `json:"rows"`
}

// FigureHeight is the full rendered figure height including chrome.
func (p *Plan) FigureHeight() int {
	return p.TotalHeight + ChromeHeight
}

// Build derives a Plan from a recording. Row order follows the header, or
// category order (EEG, ECG, Reference) when Options.ByCategory is set; within
// a category header order is preserved.
func Build(rec *recording.Recording, opts Options) *Plan {
	rowHeight := opts.RowHeight
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	channels := rec.Channels
	if opts.ByCategory {
		ordered := make([]recording.Channel, 0, len(channels))
		for _, cat := range []classify.Category{classify.EEG, classify.ECG, classify.Reference} {
			for _, ch := range channels {
				if ch.Category == cat {
					ordered = append(ordered, ch)
				}
			}
		}
		channels = ordered
	}
	if len(channels) > maxRows {
		channels = channels[:maxRows]
	}

	plan := &Plan{
		AxisGroup: SharedAxisGroup,
		RowHeight: rowHeight,
		Rows:      make([]Row, len(channels)),
	}
	for i, ch := range channels {
		plan.Rows[i] = Row{
			Channel:   ch.Name,
			Label:     RowLabel(ch),
			Unit:      ch.Unit,
			Category:  ch.Category,
			HeightPx:  rowHeight,
			AxisGroup: SharedAxisGroup,
		}
	}
	plan.TotalHeight = rowHeight * len(plan.Rows)
	return plan
}

// RowLabel builds the subplot title for a channel, e.g. "Fp1 (µV) - EEG",
// "X1_LEOG (mV) - ECG" or "CM (Reference)".
func RowLabel(ch recording.Channel) string {
	switch ch.Category {
	case classify.ECG:
		return fmt.Sprintf("%s (%s) - ECG", ch.Name, classify.Millivolt)
	case classify.Reference:
		return fmt.Sprintf("%s (Reference)", ch.Name)
	default:
		return fmt.Sprintf("%s (%s) - EEG", ch.Name, classify.Microvolt)
	}
}

package export

import (
	"fmt"
	"strings"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

const (
	DefaultWidth = 1200

	labelMargin = 6
	tickCount   = 6
)

// Stroke colors per signal class, matching the viewer themes.
var strokeColors = map[classify.Category]string{
	classify.EEG:       "#1f6fd6",
	classify.ECG:       "#d64545",
	classify.Reference: "#8a8a8a",
}

// RecordingToSVG renders the planned layout as a static SVG: one polyline
// per row at the plan's fixed row height, all rows on a shared x scale, time
// axis under the last row.
func RecordingToSVG(rec *recording.Recording, plan *layout.Plan, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	height := plan.FigureHeight()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="24" font-family="sans-serif" font-size="16" text-anchor="middle">%s — %d channels, %.0f Hz</text>
`, width/2, xmlEscape(rec.Path), len(plan.Rows), rec.SampleRate))

	tMin, tMax := timeBounds(rec.Time)
	for i, row := range plan.Rows {
		ch, ok := rec.Channel(row.Channel)
		if !ok {
			continue
		}
		top := layout.ChromeHeight/2 + i*plan.RowHeight
		drawRow(&sb, rec.Time, ch, row, top, plan.RowHeight, width, tMin, tMax)
	}

	drawTimeAxis(&sb, width, height, tMin, tMax)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func drawRow(sb *strings.Builder, times []float64, ch *recording.Channel, row layout.Row, top, rowHeight, width int, tMin, tMax float64) {
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-family="sans-serif" font-size="11" fill="#444444">%s</text>
`, labelMargin, top+12, xmlEscape(row.Label)))
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#dddddd" stroke-width="1"/>
`, top, width, top))

	if len(ch.Samples) < 2 {
		return
	}

	// Per-row auto-scale with 10% headroom, like the interactive view.
	yMin, yMax := ch.Samples[0], ch.Samples[0]
	for _, v := range ch.Samples {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	yRange := yMax - yMin
	if yRange == 0 {
		yRange = 1
	}
	yMin -= yRange * 0.1
	yRange *= 1.2

	tRange := tMax - tMin
	if tRange == 0 {
		tRange = 1
	}

	color, ok := strokeColors[ch.Category]
	if !ok {
		color = strokeColors[classify.EEG]
	}
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, color))
	for i, v := range ch.Samples {
		x := (times[i] - tMin) / tRange * float64(width)
		y := float64(top+rowHeight) - (v-yMin)/yRange*float64(rowHeight)
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	sb.WriteString("\"/>\n")
}

func drawTimeAxis(sb *strings.Builder, width, height int, tMin, tMax float64) {
	y := height - layout.ChromeHeight/4
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="#888888" stroke-width="1"/>
`, y, width, y))
	for i := 0; i <= tickCount; i++ {
		frac := float64(i) / float64(tickCount)
		x := frac * float64(width)
		t := tMin + frac*(tMax-tMin)
		anchor := "middle"
		if i == 0 {
			anchor = "start"
		} else if i == tickCount {
			anchor = "end"
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%d" font-family="sans-serif" font-size="10" fill="#666666" text-anchor="%s">%.2fs</text>
`, x, y+14, anchor, t))
	}
}

func timeBounds(times []float64) (float64, float64) {
	if len(times) == 0 {
		return 0, 1
	}
	return times[0], times[len(times)-1]
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// Package calendar renders trailing windows of day records as a heat
// grid. It is shared by the dashboard and the plain CLI output.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ecolife/ecolife-cli/internal/constants"
	"github.com/ecolife/ecolife-cli/internal/stats"
	"github.com/ecolife/ecolife-cli/internal/utils"
)

const (
	glyphNone = "·"
	glyphOne  = "▪"
	glyphBoth = "■"
)

var (
	noneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	oneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	bothStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)

	// Days with photo proof are underlined regardless of tone.
	proofStyle = lipgloss.NewStyle().Underline(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	todayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Glyph returns the unstyled symbol for a tone.
func Glyph(tone constants.Tone) string {
	switch tone {
	case constants.ToneBoth:
		return glyphBoth
	case constants.ToneOne:
		return glyphOne
	default:
		return glyphNone
	}
}

// Cell renders one slot.
func Cell(slot stats.Slot) string {
	var style lipgloss.Style
	switch slot.Tone() {
	case constants.ToneBoth:
		style = bothStyle
	case constants.ToneOne:
		style = oneStyle
	default:
		style = noneStyle
	}
	if slot.HasProof() {
		style = style.Inherit(proofStyle)
	}
	return style.Render(Glyph(slot.Tone()))
}

func weekday(day string) string {
	t, err := utils.ParseKey(day, time.UTC)
	if err != nil {
		return "?"
	}
	return t.Weekday().String()[:3]
}

// Week renders slots in one row under weekday headers. The last slot is
// highlighted as today.
func Week(slots []stats.Slot) string {
	var head, body []string
	for i, slot := range slots {
		label := weekday(slot.Day)
		if i == len(slots)-1 {
			label = todayStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		head = append(head, label)
		body = append(body, " "+Cell(slot)+" ")
	}
	return strings.Join(head, " ") + "\n" + strings.Join(body, " ")
}

// Grid renders slots seven per row, each row labelled with its first
// day.
func Grid(slots []stats.Slot) string {
	var b strings.Builder
	for start := 0; start < len(slots); start += 7 {
		end := start + 7
		if end > len(slots) {
			end = len(slots)
		}
		b.WriteString(labelStyle.Render(utils.FormatShort(slots[start].Day)))
		b.WriteString("  ")
		cells := make([]string, 0, end-start)
		for _, slot := range slots[start:end] {
			cells = append(cells, Cell(slot))
		}
		b.WriteString(strings.Join(cells, " "))
		if end < len(slots) {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Legend explains the glyphs.
func Legend() string {
	return labelStyle.Render(fmt.Sprintf("%s none  %s one  %s both  underlined = photo",
		glyphNone, glyphOne, glyphBoth))
}

// Bar renders ratio (0..1) as a width-cell progress bar with a
// percentage.
func Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return barFull.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3.0f%%", ratio*100)
}

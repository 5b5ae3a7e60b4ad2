package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmorckos/sudoku/pkg/grid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleClue  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleFill  = lipgloss.NewStyle().Foreground(colorCyan)
	styleFrame = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printSolveStats prints per-puzzle solve statistics on a single line.
func printSolveStats(technique string, durationMs int64, columns int, cached bool) {
	parts := []string{technique, fmt.Sprintf("%dms", durationMs)}
	if columns > 0 {
		parts = append(parts, fmt.Sprintf("%d columns", columns))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// =============================================================================
// Board Display
// =============================================================================

// renderBoard formats a grid with box borders following its geometry.
// Cells filled by the solver (blank in clues) render in the accent color;
// pass nil clues to render everything uniformly. Zeroes render as dots.
func renderBoard(g grid.Grid, clues grid.Grid) string {
	geo, err := grid.GeometryFor(g.Size())
	if err != nil {
		return g.String()
	}

	// Cell width grows with the maximum digit (e.g. "16").
	width := len(fmt.Sprint(geo.Size))

	var b strings.Builder
	rule := boxRule(geo, width)
	for r := 0; r < geo.Size; r++ {
		if r%geo.BoxRows == 0 {
			b.WriteString(styleFrame.Render(rule))
			b.WriteByte('\n')
		}
		for c := 0; c < geo.Size; c++ {
			if c%geo.BoxCols == 0 {
				b.WriteString(styleFrame.Render("|") + " ")
			}
			b.WriteString(renderCell(g[r][c], clues, r, c, width))
			b.WriteByte(' ')
		}
		b.WriteString(styleFrame.Render("|"))
		b.WriteByte('\n')
	}
	b.WriteString(styleFrame.Render(rule))
	return b.String()
}

// boxRule builds the horizontal separator line for one board row of boxes.
func boxRule(geo grid.Geometry, width int) string {
	segment := strings.Repeat("-", geo.BoxCols*(width+1)+1)
	boxesPerRow := geo.Size / geo.BoxCols
	var b strings.Builder
	for i := 0; i < boxesPerRow; i++ {
		b.WriteString("+")
		b.WriteString(segment)
	}
	b.WriteString("+")
	return b.String()
}

func renderCell(v int, clues grid.Grid, r, c, width int) string {
	if v == 0 {
		return StyleDim.Render(fmt.Sprintf("%*s", width, "."))
	}
	text := fmt.Sprintf("%*d", width, v)
	if clues != nil && clues[r][c] == 0 {
		return styleFill.Render(text)
	}
	return styleClue.Render(text)
}

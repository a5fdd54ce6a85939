package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/takaishi/minigrep/search"
)

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	queryInputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	caseActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	caseInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	// Result styles
	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedResultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("236")).
			Bold(true)

	lineInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Align(lipgloss.Right).
			PaddingLeft(1)

	// Preview styles
	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Bold(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6).
			Align(lipgloss.Right)

	hitLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25"))

	hitLineNumberStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25")).
				Width(6).
				Align(lipgloss.Right)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// renderView renders the entire UI
func renderView(m *Model) string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	headerHeight := 3
	statusHeight := 1
	previewHeight := max(m.height-headerHeight-statusHeight-visibleResults-2, 5)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m),
		renderResults(m),
		renderPreview(m, previewHeight),
	)
}

// renderHeader renders the query input, case toggle and status
func renderHeader(m *Model) string {
	prompt := promptStyle.Render(">")
	queryDisplay := queryInputStyle.Render(m.query + "█")

	caseTab := caseInactiveStyle.Render("Aa")
	if m.caseSensitive {
		caseTab = caseActiveStyle.Render("Aa")
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Left,
		prompt+" ",
		queryDisplay,
		"  ",
		caseTab,
		statusStyle.Render(" ctrl+t"),
	)

	statusLine := statusStyle.Render(renderStatus(m))

	header := lipgloss.JoinVertical(lipgloss.Left, headerLine, statusLine)
	return headerStyle.Width(m.width - 2).Render(header)
}

// renderStatus renders the status information
func renderStatus(m *Model) string {
	if m.isSearching {
		return "Searching..."
	}
	if m.searchError != nil {
		return fmt.Sprintf("Error: %s", m.searchError.Error())
	}

	name := filepath.Base(m.source)
	switch len(m.searchResults) {
	case 0:
		return fmt.Sprintf("No matches in %s", name)
	case 1:
		return fmt.Sprintf("1 matching line in %s", name)
	default:
		return fmt.Sprintf("%d matching lines in %s", len(m.searchResults), name)
	}
}

// renderResults renders the visible slice of the results list
func renderResults(m *Model) string {
	if len(m.searchResults) == 0 {
		return ""
	}

	availableWidth := m.width - 4 // Reserve space for borders

	startIdx := m.resultsOffset
	endIdx := min(startIdx+visibleResults, len(m.searchResults))

	var lines []string
	for i := startIdx; i < endIdx; i++ {
		line := formatResult(m, m.searchResults[i], availableWidth)
		if i == m.selectedIndex {
			line = selectedResultStyle.Render(line)
		} else {
			line = resultStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formatResult lays out a result as: line text | line number
func formatResult(m *Model, result *search.SearchResult, width int) string {
	lineInfo := fmt.Sprintf("%d", result.Line)

	infoWidth := 8
	textWidth := max(width-infoWidth, 10)

	text := highlightQuery(m.query, result.Text, m.caseSensitive, textWidth)
	textStyled := lipgloss.NewStyle().Width(textWidth).Render(text)
	infoStyled := lineInfoStyle.Width(infoWidth).Render(lineInfo)

	row := lipgloss.JoinHorizontal(lipgloss.Left, textStyled, infoStyled)
	return lipgloss.NewStyle().Width(width).Render(row)
}

// highlightQuery highlights every occurrence of query in text, then
// truncates the result to maxWidth cells.
func highlightQuery(query, text string, caseSensitive bool, maxWidth int) string {
	if query == "" {
		return ansi.Truncate(text, maxWidth, "...")
	}

	haystack, needle := text, query
	if !caseSensitive {
		haystack, needle = strings.ToLower(text), strings.ToLower(query)
		// Lowercasing changed byte lengths, offsets would not line up
		if len(haystack) != len(text) || len(needle) != len(query) {
			return ansi.Truncate(text, maxWidth, "...")
		}
	}

	var b strings.Builder
	last := 0
	for {
		idx := strings.Index(haystack[last:], needle)
		if idx < 0 {
			break
		}
		start := last + idx
		end := start + len(needle)
		b.WriteString(text[last:start])
		b.WriteString(highlightStyle.Render(text[start:end]))
		last = end
	}
	b.WriteString(text[last:])

	return ansi.Truncate(b.String(), maxWidth, "...")
}

// renderPreview renders the lines around the selected hit
func renderPreview(m *Model, maxHeight int) string {
	if m.previewError != nil {
		return errorStyle.Render("Error loading preview: " + m.previewError.Error())
	}

	if m.preview == nil {
		return ""
	}

	lines := []string{previewHeaderStyle.Render(m.preview.File)}

	availableWidth := max(m.width-16, 10) // line numbers and borders
	for i, line := range m.preview.Lines {
		if len(lines) >= maxHeight-1 {
			break
		}

		lineNumStr := fmt.Sprintf("%4d", m.preview.StartLine+i)

		if i+1 == m.preview.HitLine {
			lineNumStr = hitLineNumberStyle.Render(lineNumStr)
			line = hitLineStyle.Render(highlightQuery(m.query, line, m.caseSensitive, availableWidth))
		} else {
			lineNumStr = lineNumberStyle.Render(lineNumStr)
			line = ansi.Truncate(line, availableWidth, "...")
		}

		lines = append(lines, fmt.Sprintf("%s | %s", lineNumStr, line))
	}

	return previewStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

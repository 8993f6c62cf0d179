// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package highlight renders a markdown document as ANSI-styled text for
// terminal display. Tables are re-rendered in canonical form and
// colorized, ATX headings are styled by level, and fenced code blocks
// are tokenized with Chroma. Every other line passes through verbatim.
//
// The fence scan here is display-only. Table extraction is
// fence-unaware, so a pipe table inside a fence is still indexed and
// editable elsewhere; during rendering the fence wins and its lines are
// drawn as code.
package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/framegrace/mdsheet/mdtable"
)

var (
	// heading1Style for level-1 ATX headings
	heading1Style = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("212"))

	// heading2Style for level-2 ATX headings
	heading2Style = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	// headingStyle for level-3 and deeper ATX headings
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// tableHeaderStyle for table header rows
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("6"))

	// tableSeparatorStyle for table alignment rows
	tableSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	// numberStyle for numeric runs in table body cells
	numberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))

	// fenceStyle for the ``` marker lines around code blocks
	fenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Options control rendering.
type Options struct {
	// Style names the Chroma style used for code blocks. Empty selects
	// the default.
	Style string

	// Plain disables all ANSI styling. Tables are still re-rendered in
	// canonical form.
	Plain bool
}

// Render returns the document with every table re-rendered canonically
// and, unless opts.Plain is set, ANSI styling applied. The result
// carries no trailing newline; the caller decides how to terminate it.
func Render(content string, opts Options) string {
	doc := mdtable.Parse(content)

	tableAt := make(map[int]*mdtable.Table, len(doc.Tables))
	for i := range doc.Tables {
		tableAt[doc.Tables[i].StartLine] = &doc.Tables[i]
	}

	style := chromaStyle(opts.Style)

	var out []string
	i := 0
	for i < len(doc.Lines) {
		line := doc.Lines[i]
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			end, body, lang := scanFence(doc.Lines, i)
			out = append(out, styleMarker(line, opts.Plain))
			out = append(out, renderCodeLines(body, lang, style, opts.Plain)...)
			if end > i && isFenceClose(strings.TrimSpace(doc.Lines[end])) {
				out = append(out, styleMarker(doc.Lines[end], opts.Plain))
			}
			i = end + 1
			continue
		}

		if t, ok := tableAt[i]; ok {
			out = append(out, renderTable(t, opts.Plain)...)
			i = t.EndLine + 1
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			out = append(out, renderHeading(line, trimmed, opts.Plain))
			i++
			continue
		}

		out = append(out, line)
		i++
	}

	return strings.Join(out, "\n")
}

// scanFence finds the extent of a fence opened at lines[start]. It
// returns the index of the closing marker line (or the last line when
// the fence is unterminated), the body lines between the markers, and
// the language named by the opener's info string.
func scanFence(lines []string, start int) (end int, body []string, lang string) {
	info := strings.TrimPrefix(strings.TrimSpace(lines[start]), "```")
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = fields[0]
	}

	for j := start + 1; j < len(lines); j++ {
		if isFenceClose(strings.TrimSpace(lines[j])) {
			return j, lines[start+1 : j], lang
		}
	}
	return len(lines) - 1, lines[start+1:], lang
}

// isFenceClose reports whether a trimmed line is a closing fence
// marker: three or more backticks and nothing else.
func isFenceClose(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '`' {
			return false
		}
	}
	return true
}

// renderTable re-renders a table canonically and styles its rows:
// header bold cyan, separator dim, numeric runs in body cells
// highlighted.
func renderTable(t *mdtable.Table, plain bool) []string {
	rows := strings.Split(strings.TrimSuffix(t.Serialize(), "\n"), "\n")
	if plain {
		return rows
	}
	for i, row := range rows {
		switch i {
		case 0:
			rows[i] = tableHeaderStyle.Render(row)
		case 1:
			rows[i] = tableSeparatorStyle.Render(row)
		default:
			rows[i] = styleNumbers(row)
		}
	}
	return rows
}

// styleNumbers highlights runs of digits and dots in a rendered body
// row. Everything else is emitted unchanged.
func styleNumbers(s string) string {
	var sb strings.Builder
	var run []rune
	flush := func() {
		if len(run) == 0 {
			return
		}
		sb.WriteString(numberStyle.Render(string(run)))
		run = run[:0]
	}
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			run = append(run, r)
			continue
		}
		flush()
		sb.WriteRune(r)
	}
	flush()
	return sb.String()
}

// renderHeading styles an ATX heading by the length of its '#' run.
func renderHeading(line, trimmed string, plain bool) string {
	if plain {
		return line
	}
	level := 0
	for _, r := range trimmed {
		if r != '#' {
			break
		}
		level++
	}
	switch level {
	case 1:
		return heading1Style.Render(line)
	case 2:
		return heading2Style.Render(line)
	default:
		return headingStyle.Render(line)
	}
}

func styleMarker(line string, plain bool) string {
	if plain {
		return line
	}
	return fenceStyle.Render(line)
}

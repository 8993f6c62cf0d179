// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

const defaultStyleName = "catppuccin-mocha"

// chromaStyle resolves a style name to a Chroma style, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// getLexer returns a Chroma lexer by name, or auto-detects from content.
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// renderCodeLines colorizes fence body lines. The language comes from
// the opener's info string when present, otherwise it is inferred from
// the body itself.
func renderCodeLines(body []string, lang string, style *chroma.Style, plain bool) []string {
	if plain || len(body) == 0 {
		return append([]string(nil), body...)
	}
	if lang == "" {
		lang = inferLanguage(body).name
	}
	source := strings.Join(body, "\n")
	rendered := strings.TrimSuffix(renderCode(source, lang, style), "\n")
	return strings.Split(rendered, "\n")
}

// renderCode tokenizes source and re-emits it with per-token foreground
// styling. Tokenization failures fall back to the unstyled source.
func renderCode(source, lexerName string, style *chroma.Style) string {
	lexer := getLexer(lexerName, source)
	lexer = chroma.Coalesce(lexer)

	tokens, err := chroma.Tokenise(lexer, nil, source)
	if err != nil {
		return source
	}

	baseColour := style.Get(chroma.Text).Colour

	var sb strings.Builder
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		writeToken(&sb, tok, style.Get(tok.Type), baseColour)
	}
	return sb.String()
}

// writeToken emits one token, styling each newline-free segment so the
// output keeps the line structure of the input. Tokens whose color
// matches the style's base text color stay unstyled so the terminal
// default shows through.
func writeToken(sb *strings.Builder, tok chroma.Token, entry chroma.StyleEntry, baseColour chroma.Colour) {
	st := lipgloss.NewStyle()
	styled := false
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
		styled = true
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		styled = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		styled = true
	}

	for i, part := range strings.Split(tok.Value, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if part == "" {
			continue
		}
		if styled {
			sb.WriteString(st.Render(part))
		} else {
			sb.WriteString(part)
		}
	}
}

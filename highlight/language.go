// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates bound the Bayesian classifier, which only ranks
// the languages it is given. The list covers what realistically shows
// up in fenced blocks of workspace notes.
var classifierCandidates = []string{
	"C", "C++", "CSS", "Go", "HTML", "Java", "JavaScript", "JSON",
	"Python", "Ruby", "Rust", "Shell", "SQL", "TOML", "TypeScript", "YAML",
}

// langResult is one language guess and the tier that produced it.
type langResult struct {
	name   string
	method string
}

// inferLanguage guesses the language of a fenced block that has no info
// string. Tiers: shebang, then Chroma's content analysers, then
// go-enry's Bayesian classifier. Names are lowercased so they feed
// straight back into lexer lookup.
func inferLanguage(lines []string) langResult {
	text := strings.Join(lines, "\n")
	if strings.TrimSpace(text) == "" {
		return langResult{}
	}
	content := []byte(text)

	if langs := enry.GetLanguagesByShebang("", content, nil); len(langs) > 0 {
		return langResult{name: strings.ToLower(langs[0]), method: "shebang"}
	}
	if lexer := lexers.Analyse(text); lexer != nil {
		return langResult{name: strings.ToLower(lexer.Config().Name), method: "heuristic"}
	}
	if langs := enry.GetLanguagesByClassifier("", content, classifierCandidates); len(langs) > 0 {
		return langResult{name: strings.ToLower(langs[0]), method: "classifier"}
	}
	return langResult{}
}

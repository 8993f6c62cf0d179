// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdtable

import "strings"

// Rebuild splices freshly rendered tables into the original line list.
// For each table the lines from the running cursor up to StartLine pass
// through verbatim, the span [StartLine, EndLine] is replaced by the
// table's current serialization, and the cursor advances past the span.
// Tables must arrive sorted by StartLine and non-overlapping, with spans
// that index originalLines; Rebuild trusts the caller on both counts.
//
// The result drops exactly one trailing newline unless the original
// document's last line was itself empty, preserving whether the source
// ended in a newline-terminated blank line.
func Rebuild(originalLines []string, tables []Table) string {
	if len(tables) == 0 {
		return strings.Join(originalLines, "\n")
	}

	var b strings.Builder
	cursor := 0
	for _, t := range tables {
		for idx := cursor; idx < t.StartLine && idx < len(originalLines); idx++ {
			b.WriteString(originalLines[idx])
			b.WriteByte('\n')
		}
		b.WriteString(t.Serialize())
		cursor = t.EndLine + 1
	}
	for idx := cursor; idx < len(originalLines); idx++ {
		b.WriteString(originalLines[idx])
		b.WriteByte('\n')
	}

	out := b.String()
	lastEmpty := len(originalLines) > 0 && originalLines[len(originalLines)-1] == ""
	if !lastEmpty {
		out = strings.TrimSuffix(out, "\n")
	}
	return out
}

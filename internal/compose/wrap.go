package compose

import (
	"strings"
	"unicode/utf8"
)

// measurer reports the rendered width of a single line, in points.
type measurer interface {
	WidthOf(font Font, size float64, text string) float64
}

const defaultTitle = "Key Insight"

// summaryTitle condenses free text into a display title within a character
// budget. Empty text falls back to a stock label, text within the budget
// passes through trimmed, longer text is cut to its leading clause and, when
// the clause itself overruns, to its first six words.
func summaryTitle(text string, budget int) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return defaultTitle
	}
	if utf8.RuneCountInString(trimmed) <= budget {
		return trimmed
	}

	clause := trimmed
	for _, mark := range []string{".", "?", "!"} {
		if i := strings.Index(clause, mark); i >= 0 {
			clause = clause[:i]
		}
	}
	if utf8.RuneCountInString(clause) > budget {
		words := strings.Fields(clause)
		if len(words) > 6 {
			words = words[:6]
		}
		return strings.Join(words, " ")
	}
	return clause
}

// wrapByWidth greedily packs words into lines no wider than budget points.
// A single word wider than the budget still gets its own line. Text without
// any words yields one line holding the text as-is.
func wrapByWidth(m measurer, font Font, size float64, text string, budget float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if m.WidthOf(font, size, test) <= budget {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// wrapByChars wraps text against a character budget. Input newlines force
// breaks, and the budget accounting charges every packed word one trailing
// space, so effective lines run slightly under the budget. Blank segments
// survive as empty lines so callers keep their vertical rhythm.
func wrapByChars(text string, budget int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{""}
	}

	var lines []string
	for _, segment := range strings.Split(text, "\n") {
		words := strings.Fields(segment)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		length := 0
		for _, word := range words {
			wordLen := utf8.RuneCountInString(word)
			if length+wordLen+1 <= budget {
				current += word + " "
				length += wordLen + 1
				continue
			}
			if current != "" {
				lines = append(lines, strings.TrimSpace(current))
			}
			current = word + " "
			length = wordLen + 1
		}
		if current != "" {
			lines = append(lines, strings.TrimSpace(current))
		}
	}
	return lines
}

// bulletUnits splits content into bullet units. Sentence boundaries and
// newlines delimit units, units of minBulletChars characters or fewer are
// dropped, surviving units are padded with a period when they lack terminal
// punctuation, and at most maxBulletUnits come back.
func bulletUnits(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var units []string
	for _, segment := range strings.Split(strings.ReplaceAll(text, ". ", ".\n"), "\n") {
		segment = strings.TrimSpace(segment)
		if utf8.RuneCountInString(segment) <= minBulletChars {
			continue
		}
		if !endsWithAny(segment, ".!?;") {
			segment += "."
		}
		units = append(units, segment)
		if len(units) == maxBulletUnits {
			break
		}
	}
	return units
}

// ensureTerminal pads non-empty text with a period when it does not already
// end in sentence punctuation.
func ensureTerminal(text string) string {
	if text == "" || endsWithAny(text, ".!?") {
		return text
	}
	return text + "."
}

func endsWithAny(s, marks string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(marks, r)
}

package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cfglang/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "show", "source", "reset", "clear", "quit"}

// builtinNames are completed in input mode alongside the declared constants.
var builtinNames = []string{"len"}

// previewWidth bounds the value preview printed by the list command.
const previewWidth = 40

// isWordBoundary reports whether r delimits a word for completion. This
// covers whitespace and every punctuation character of the language.
// Underscores are part of names.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'[', ']', '<', '>', '(', ')',
		'+', '-', '*', '/',
		',', ':', '?', '%', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor and its byte offsets within
// input. The word is empty when the cursor sits between two boundaries.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// inQuote reports whether offset pos of input lies inside a string literal.
func inQuote(input string, pos int) bool {
	return strings.Count(input[:pos], "'")%2 == 1
}

// candidates returns the completable names for the given mode.
func candidates(env *lang.Environment, mode inputMode) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	names := make([]string, 0, env.Len()+len(builtinNames))
	for name := range env.Names() {
		names = append(names, name)
	}

	return append(names, builtinNames...)
}

// computeMatches ranks the candidates against the word at the cursor. It
// returns nil matches for an empty word and for words inside a string.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" || inQuote(input, wordStart) {
		return nil, wordStart, wordEnd
	}

	// "show" takes a constant name.
	pool := candidates(m.session.Env(), m.mode)
	if m.mode == modeCtrl && wordStart > 0 {
		pool = candidates(m.session.Env(), modeEval)
	}

	return fuzzy.Find(word, pool), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate uses the selected style while
// tab-cycling.
func renderCandidateBar(matches fuzzy.Matches, suggIdx int, tabActive bool, width int) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted. Built-in functions get a "()" suffix that is never inserted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, highlightStyle
	if selected {
		base, highlight = selectedStyle, selectedHighlightStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}

// formatPreview returns a short preview of v for the list command.
func formatPreview(v lang.Value) string {
	src := v.String()
	if utf8.RuneCountInString(src) > previewWidth {
		runes := []rune(src)
		src = string(runes[:previewWidth-3]) + "..."
	}

	return v.Type.String() + " " + src
}

func isFunction(name string) bool { return slices.Contains(builtinNames, name) }

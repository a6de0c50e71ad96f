package notebook

import "strings"

// SplitSource splits cell text into nbformat's stored line form: every line
// keeps its trailing newline, a final unterminated line is kept bare, and
// empty text yields no lines at all.
func SplitSource(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	// SplitAfter leaves a trailing empty element when the text ends in a
	// newline; nbformat stores no such element.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinSource is the inverse of SplitSource.
func JoinSource(lines []string) string {
	return strings.Join(lines, "")
}

package manifest

import (
	"fmt"
	"strings"
)

// ExtractSection returns the exact [StartLine, EndLine) slice of the
// markdown owned by the section, newline-joined. Out-of-range starts
// return an empty string rather than an error.
func ExtractSection(markdown string, section SectionAsset) string {
	lines := strings.Split(markdown, "\n")

	if section.StartLine >= len(lines) || section.StartLine < 0 {
		return ""
	}
	end := section.EndLine
	if end > len(lines) {
		end = len(lines)
	}
	if end < section.StartLine {
		end = section.StartLine
	}
	return strings.Join(lines[section.StartLine:end], "\n")
}

// ExtractTable re-scans the markdown with the same pattern and ID
// assignment as ParseTables and returns the raw block for tableID.
// The second return is false when no table has that ID.
func ExtractTable(markdown, tableID string) (string, bool) {
	for i, loc := range tablePattern.FindAllStringIndex(markdown, -1) {
		if fmt.Sprintf("tab_%d", i+1) == tableID {
			return markdown[loc[0]:loc[1]], true
		}
	}
	return "", false
}

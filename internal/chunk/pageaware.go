package chunk

import (
	"regexp"
	"strconv"
	"strings"
)

// PageAwareChunker splits at the page markers PDF extraction embeds in
// the markdown stream, so no chunk ever spans a page boundary. Pages
// larger than the chunk size are sub-chunked semantically. Input without
// markers is delegated to SemanticChunker.
type PageAwareChunker struct{}

var pageMarkerPattern = regexp.MustCompile(`<!--\s*Page\s+(\d+)\s*-->`)

func (pc PageAwareChunker) Chunk(text string, cfg Config) []Chunk {
	markers := pageMarkerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return SemanticChunker{}.Chunk(text, cfg)
	}

	var chunks []Chunk
	index := 0

	for i, m := range markers {
		page, _ := strconv.Atoi(text[m[2]:m[3]])
		start := m[1]
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		pageText := text[start:end]
		trimmed := strings.TrimSpace(pageText)
		if trimmed == "" {
			continue
		}
		// Anchor offsets to the trimmed content's position in the
		// full text.
		trimStart := start + len(pageText) - len(strings.TrimLeft(pageText, " \t\r\n"))

		if len(trimmed) <= cfg.ChunkSize {
			if len(trimmed) >= cfg.MinChunkSize {
				c := Chunk{
					Text:      trimmed,
					Index:     index,
					StartChar: trimStart,
					EndChar:   trimStart + len(trimmed),
				}
				c.setMeta("page", page)
				chunks = append(chunks, c)
				index++
			}
			continue
		}

		for _, sc := range (SemanticChunker{}).Chunk(trimmed, cfg) {
			sc.Index = index
			sc.StartChar += trimStart
			sc.EndChar += trimStart
			sc.setMeta("page", page)
			chunks = append(chunks, sc)
			index++
		}
	}

	return chunks
}

package chunk

import (
	"regexp"
	"strings"
)

// SemanticChunker splits at document structure: headings first, then
// paragraphs, with a basic sliding-window fallback for sections whose
// paragraphs are themselves oversized.
type SemanticChunker struct{}

var (
	// Markdown ATX headings, ALL-CAPS lines, or numbered sections.
	headingPattern = regexp.MustCompile(`(?m)^(?:#{1,6}\s+.+|[A-Z][A-Z\s]{5,50}$|\d+\.\s+[A-Z].{5,50}$)`)

	paraSeparator = regexp.MustCompile(`\n\s*\n`)
)

type section struct {
	text    string
	start   int
	end     int
	heading string
}

func (sc SemanticChunker) Chunk(text string, cfg Config) []Chunk {
	var chunks []Chunk
	index := 0

	for _, sec := range splitByHeadings(text) {
		// Small sections stay whole.
		if len(sec.text) <= cfg.ChunkSize {
			if len(sec.text) >= cfg.MinChunkSize {
				c := Chunk{
					Text:      sec.text,
					Index:     index,
					StartChar: sec.start,
					EndChar:   sec.end,
				}
				c.setMeta("heading", sec.heading)
				chunks = append(chunks, c)
				index++
			}
			continue
		}

		paraChunks := splitByParagraphs(sec.text, sec.start, cfg)

		if len(paraChunks) == 1 && paraChunks[0].Size() > cfg.ChunkSize {
			// Paragraph splitting collapsed to one oversized chunk;
			// fall back to the sliding window and re-anchor offsets
			// to the section's position in the full text.
			for _, bc := range (BasicChunker{}).Chunk(sec.text, cfg) {
				bc.Index = index
				bc.StartChar += sec.start
				bc.EndChar += sec.start
				bc.setMeta("heading", sec.heading)
				chunks = append(chunks, bc)
				index++
			}
			continue
		}

		for _, pc := range paraChunks {
			pc.Index = index
			pc.setMeta("heading", sec.heading)
			chunks = append(chunks, pc)
			index++
		}
	}

	return chunks
}

// splitByHeadings partitions text into sections at heading boundaries.
// Text before the first heading becomes a leading section with an empty
// heading label; text with no headings at all is a single section.
func splitByHeadings(text string) []section {
	matches := headingPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []section{{text: text, start: 0, end: len(text)}}
	}

	var sections []section
	if matches[0][0] > 0 {
		sections = append(sections, section{
			text:  text[:matches[0][0]],
			start: 0,
			end:   matches[0][0],
		})
	}

	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		heading := strings.TrimSpace(text[m[0]:m[1]])
		if len(heading) > 50 {
			heading = heading[:50]
		}
		sections = append(sections, section{
			text:    text[start:end],
			start:   start,
			end:     end,
			heading: heading,
		})
	}

	return sections
}

// splitByParagraphs greedily accumulates blank-line-separated blocks up
// to the chunk size, seeding each new buffer with the configured overlap
// from the flushed one. Offsets are relative to the full source text via
// the given section offset.
func splitByParagraphs(text string, offset int, cfg Config) []Chunk {
	paragraphs := paraSeparator.Split(text, -1)

	var chunks []Chunk
	var current string
	currentStart := offset
	index := 0

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(current)+len(para)+2 > cfg.ChunkSize {
			if len(current) >= cfg.MinChunkSize {
				chunks = append(chunks, Chunk{
					Text:      current,
					Index:     index,
					StartChar: currentStart,
					EndChar:   currentStart + len(current),
				})
				index++
			}

			if cfg.ChunkOverlap > 0 && current != "" {
				overlap := current
				if len(overlap) > cfg.ChunkOverlap {
					overlap = overlap[len(overlap)-cfg.ChunkOverlap:]
				}
				currentStart += len(current) - len(overlap)
				current = overlap + "\n\n" + para
			} else {
				currentStart += len(current) + 2
				current = para
			}
		} else {
			if current != "" {
				current += "\n\n" + para
			} else {
				current = para
			}
		}
	}

	if len(current) >= cfg.MinChunkSize {
		chunks = append(chunks, Chunk{
			Text:      current,
			Index:     index,
			StartChar: currentStart,
			EndChar:   currentStart + len(current),
		})
	}

	return chunks
}

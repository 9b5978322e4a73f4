package chunk

import "strings"

// BasicChunker slides a fixed-size window over the text with overlap.
// Simple but effective for unstructured input.
type BasicChunker struct{}

// Sentence terminators checked when shrinking a window, including CJK
// full-width forms.
var sentenceEnds = []string{".", "。", "!", "?", "！", "？"}

func (BasicChunker) Chunk(text string, cfg Config) []Chunk {
	var chunks []Chunk
	start := 0
	index := 0

	for start < len(text) {
		end := start + cfg.ChunkSize

		// Final partial window.
		if end >= len(text) {
			chunkText := text[start:]
			if len(chunkText) >= cfg.MinChunkSize {
				chunks = append(chunks, Chunk{
					Text:      chunkText,
					Index:     index,
					StartChar: start,
					EndChar:   len(text),
				})
			}
			break
		}

		chunkText := text[start:end]
		if cfg.RespectSentences {
			chunkText = adjustToSentence(chunkText)
		}

		if len(chunkText) >= cfg.MinChunkSize {
			chunks = append(chunks, Chunk{
				Text:      chunkText,
				Index:     index,
				StartChar: start,
				EndChar:   start + len(chunkText),
			})
			index++
		}

		// Advance with overlap, guarding against degenerate configs
		// that would stall the window.
		advance := len(chunkText) - cfg.ChunkOverlap
		if advance < 1 {
			advance = 1
		}
		start += advance
	}

	return chunks
}

// adjustToSentence shrinks the window to end at the last sentence
// terminator found in its final 20%. The full window is kept when no
// terminator is present.
func adjustToSentence(chunkText string) string {
	searchStart := len(chunkText) * 8 / 10
	region := chunkText[searchStart:]

	bestPos := -1
	bestEnd := 0
	for _, end := range sentenceEnds {
		if pos := strings.LastIndex(region, end); pos > bestPos {
			bestPos = pos
			bestEnd = pos + len(end)
		}
	}
	if bestPos >= 0 {
		return chunkText[:searchStart+bestEnd]
	}
	return chunkText
}

package chunk

import (
	"fmt"
	"strings"
	"testing"
)

func TestPageAwareChunker_OneChunkPerPage(t *testing.T) {
	text := "<!-- Page 1 -->\nPage one content here, padded out to clear the minimum size.\n\n" +
		"<!-- Page 2 -->\nPage two content here, padded out to clear the minimum size.\n\n" +
		"<!-- Page 3 -->\nPage three content here, padded out to clear the minimum.\n"
	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 10}
	chunks := PageAwareChunker{}.Chunk(text, cfg)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		page, _ := c.Metadata["page"].(int)
		if page != i+1 {
			t.Errorf("chunk %d: expected page %d, got %d", i, i+1, page)
		}
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		if want := text[c.StartChar:c.EndChar]; want != c.Text {
			t.Errorf("chunk %d: offsets do not address the chunk text", i)
		}
	}
}

func TestPageAwareChunker_NoMarkersDelegatesToSemantic(t *testing.T) {
	text := "# Heading\n\nBody content without any page markers, long enough to keep.\n"
	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 10}

	got := PageAwareChunker{}.Chunk(text, cfg)
	want := SemanticChunker{}.Chunk(text, cfg)

	if len(got) != len(want) {
		t.Fatalf("expected semantic fallback to produce %d chunks, got %d", len(want), len(got))
	}
	for i := range got {
		if got[i].Text != want[i].Text {
			t.Errorf("chunk %d: fallback output diverged from semantic chunker", i)
		}
	}
}

func TestPageAwareChunker_LargePageSubChunked(t *testing.T) {
	big := strings.Repeat("Sentence on a large page. ", 100)
	text := "<!-- Page 1 -->\nSmall page content here, enough to keep around.\n" +
		"<!-- Page 2 -->\n" + big
	cfg := Config{ChunkSize: 400, ChunkOverlap: 50, MinChunkSize: 10, RespectSentences: true}
	chunks := PageAwareChunker{}.Chunk(text, cfg)

	if len(chunks) < 3 {
		t.Fatalf("expected page 2 to be sub-chunked, got %d chunks total", len(chunks))
	}
	if page, _ := chunks[0].Metadata["page"].(int); page != 1 {
		t.Errorf("expected first chunk on page 1, got %d", page)
	}
	for i, c := range chunks[1:] {
		if page, _ := c.Metadata["page"].(int); page != 2 {
			t.Errorf("chunk %d: expected page 2, got %d", i+1, page)
		}
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartChar < chunks[i-1].StartChar {
			t.Errorf("chunk %d: start offset decreased", i)
		}
	}
}

func TestPageAwareChunker_TinyPageDropped(t *testing.T) {
	text := "<!-- Page 1 -->\nok\n<!-- Page 2 -->\nSecond page has enough content to be emitted as a chunk.\n"
	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 20}
	chunks := PageAwareChunker{}.Chunk(text, cfg)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if page, _ := chunks[0].Metadata["page"].(int); page != 2 {
		t.Errorf("expected surviving chunk on page 2, got %d", page)
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected renumbered index 0, got %d", chunks[0].Index)
	}
}

func TestPageAwareChunker_ManyPages(t *testing.T) {
	var b strings.Builder
	for p := 1; p <= 10; p++ {
		fmt.Fprintf(&b, "<!-- Page %d -->\nContent for page number %d with padding text to keep.\n\n", p, p)
	}
	cfg := Config{ChunkSize: 500, ChunkOverlap: 50, MinChunkSize: 10}
	chunks := PageAwareChunker{}.Chunk(b.String(), cfg)

	if len(chunks) != 10 {
		t.Fatalf("expected 10 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if page, _ := c.Metadata["page"].(int); page != i+1 {
			t.Errorf("chunk %d: expected page %d, got %d", i, i+1, page)
		}
	}
}

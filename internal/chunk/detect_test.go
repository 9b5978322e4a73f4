package chunk

import (
	"strings"
	"testing"
)

func TestDetectDocumentType_GeneralFallback(t *testing.T) {
	got := DetectDocumentType("random filler text with no keywords", "report.pdf")
	if got != TypeGeneral {
		t.Errorf("expected general, got %s", got)
	}
}

func TestDetectDocumentType_FilenameHint(t *testing.T) {
	for _, name := range []string{"notes.md", "readme.txt", "doc.rst"} {
		if got := DetectDocumentType("patient diagnosis treatment clinical", name); got != TypeSimple {
			t.Errorf("%s: expected simple (filename wins), got %s", name, got)
		}
	}
}

func TestDetectDocumentType_Medical(t *testing.T) {
	text := "The patient received a diagnosis and began treatment in a clinical setting."
	if got := DetectDocumentType(text, "study.pdf"); got != TypeMedical {
		t.Errorf("expected medical, got %s", got)
	}
}

func TestDetectDocumentType_Technical(t *testing.T) {
	text := "This algorithm implementation exposes a function through the api."
	if got := DetectDocumentType(text, "paper.pdf"); got != TypeTechnical {
		t.Errorf("expected technical, got %s", got)
	}
}

func TestDetectDocumentType_Legal(t *testing.T) {
	text := "The party hereby agrees, whereas this agreement includes a liability clause."
	if got := DetectDocumentType(text, "contract.pdf"); got != TypeLegal {
		t.Errorf("expected legal, got %s", got)
	}
}

func TestDetectDocumentType_MedicalBeatsTechnical(t *testing.T) {
	// Both lists clear the threshold; medical is checked first.
	text := "patient diagnosis treatment clinical algorithm implementation function api"
	if got := DetectDocumentType(text, "mixed.pdf"); got != TypeMedical {
		t.Errorf("expected medical to win, got %s", got)
	}
}

func TestDetectDocumentType_SamplesFirst5000Bytes(t *testing.T) {
	// Keywords past the sample window must not influence detection.
	text := strings.Repeat("filler words here ", 300) + "patient diagnosis treatment clinical drug dose"
	if got := DetectDocumentType(text, "long.pdf"); got != TypeGeneral {
		t.Errorf("expected general (keywords outside sample), got %s", got)
	}
}

func TestSmartChunk_AutoPicksPageAware(t *testing.T) {
	text := "<!-- Page 1 -->\n" + strings.Repeat("First page content repeated to clear the minimum. ", 4) + "\n" +
		"<!-- Page 2 -->\n" + strings.Repeat("Second page content repeated to clear the minimum. ", 4) + "\n"
	chunks := SmartChunk(text, "doc.pdf", "auto", nil)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 page chunks, got %d", len(chunks))
	}
	if page, _ := chunks[0].Metadata["page"].(int); page != 1 {
		t.Errorf("expected page metadata from page-aware strategy, got %d", page)
	}
}

func TestSmartChunk_AutoPicksSemantic(t *testing.T) {
	text := "# Heading\n\n" + strings.Repeat("Body without page markers, repeated to clear the minimum size. ", 3) + "\n"
	chunks := SmartChunk(text, "doc.pdf", "auto", nil)

	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if _, hasPage := chunks[0].Metadata["page"]; hasPage {
		t.Error("semantic strategy must not tag pages")
	}
	if heading, _ := chunks[0].Metadata["heading"].(string); heading != "# Heading" {
		t.Errorf("expected heading metadata, got %q", heading)
	}
}

func TestSmartChunk_OverrideConfigWins(t *testing.T) {
	text := strings.Repeat("Override sentence content. ", 40)
	override := &Config{ChunkSize: 120, ChunkOverlap: 20, MinChunkSize: 10}
	chunks := SmartChunk(text, "doc.pdf", "basic", override)

	if len(chunks) < 2 {
		t.Fatalf("expected override chunk size to force a split, got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if c.Size() > 120 {
			t.Errorf("chunk %d: size %d exceeds override limit", i, c.Size())
		}
	}
}

func TestForStrategy_UnknownFallsBackToSemantic(t *testing.T) {
	if _, ok := ForStrategy("nope").(SemanticChunker); !ok {
		t.Errorf("expected semantic fallback, got %T", ForStrategy("nope"))
	}
	if _, ok := ForStrategy("basic").(BasicChunker); !ok {
		t.Error("expected basic strategy")
	}
	if _, ok := ForStrategy("page_aware").(PageAwareChunker); !ok {
		t.Error("expected page_aware strategy")
	}
}

package chunk

import "strings"

// SmartChunk detects the document type, resolves a configuration and a
// strategy, and chunks the text. An explicit override config takes
// precedence over the type-derived preset. Strategy "auto" picks
// page_aware when page markers are present, semantic otherwise.
func SmartChunk(text, filename, strategy string, override *Config) []Chunk {
	docType := DetectDocumentType(text, filename)

	cfg := ConfigFor(docType)
	if override != nil {
		cfg = *override
	}

	if strategy == "auto" || strategy == "" {
		if strings.Contains(text, "<!-- Page") {
			strategy = "page_aware"
		} else {
			strategy = "semantic"
		}
	}

	return ForStrategy(strategy).Chunk(text, cfg)
}

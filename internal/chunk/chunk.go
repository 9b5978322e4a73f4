package chunk

// DocumentType classifies a document for chunking-profile selection.
type DocumentType string

const (
	TypeGeneral   DocumentType = "general"
	TypeTechnical DocumentType = "technical"
	TypeSimple    DocumentType = "simple"
	TypeLegal     DocumentType = "legal"
	TypeMedical   DocumentType = "medical"
)

// Config controls how a strategy splits text. Constructed once per
// chunking call, never mutated.
type Config struct {
	ChunkSize         int  // Target max chunk size in bytes.
	ChunkOverlap      int  // Overlap carried into the next chunk.
	MinChunkSize      int  // Candidates smaller than this are dropped.
	RespectSentences  bool // Prefer sentence-boundary breaks.
	RespectParagraphs bool // Prefer paragraph-boundary breaks.
}

// DefaultConfig returns the general-purpose configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         1000,
		ChunkOverlap:      200,
		MinChunkSize:      100,
		RespectSentences:  true,
		RespectParagraphs: true,
	}
}

// ConfigFor returns the tuned configuration for a document type.
// Unrecognized types fall back to the general preset.
func ConfigFor(dt DocumentType) Config {
	cfg := DefaultConfig()
	switch dt {
	case TypeGeneral:
		cfg.ChunkSize, cfg.ChunkOverlap = 1000, 200
	case TypeTechnical:
		// Larger context for code and equations.
		cfg.ChunkSize, cfg.ChunkOverlap = 1500, 300
	case TypeSimple:
		cfg.ChunkSize, cfg.ChunkOverlap = 800, 160
	case TypeLegal:
		// Higher overlap for cross-references.
		cfg.ChunkSize, cfg.ChunkOverlap = 1200, 400
	case TypeMedical:
		cfg.ChunkSize, cfg.ChunkOverlap = 1000, 250
	}
	return cfg
}

// Chunk is one retrieval-sized span of the source text. StartChar and
// EndChar are byte offsets into the original, un-chunked text. After
// sentence-boundary trimming a chunk's text may be shorter than its
// nominal window, so EndChar-StartChar == len(Text) is not guaranteed,
// but StartChar <= EndChar always holds.
type Chunk struct {
	Text      string         `json:"text"`
	Index     int            `json:"index"`
	StartChar int            `json:"start_char"`
	EndChar   int            `json:"end_char"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Size returns the chunk's byte length.
func (c Chunk) Size() int {
	return len(c.Text)
}

func (c *Chunk) setMeta(key string, value any) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]any, 2)
	}
	c.Metadata[key] = value
}

// Strategy splits text into an ordered chunk sequence. Implementations
// are pure functions over the input: deterministic, no I/O, safe for
// concurrent use.
type Strategy interface {
	Chunk(text string, cfg Config) []Chunk
}

// ForStrategy returns the strategy registered under name.
// Unknown names fall back to the semantic strategy.
func ForStrategy(name string) Strategy {
	switch name {
	case "basic":
		return BasicChunker{}
	case "page_aware":
		return PageAwareChunker{}
	default:
		return SemanticChunker{}
	}
}

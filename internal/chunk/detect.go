package chunk

import "strings"

// Keyword lists for content-based type detection. Checked in order;
// the first list with three or more hits wins.
var (
	medicalTerms = []string{
		"patient", "diagnosis", "treatment", "clinical", "drug",
		"dose", "mg", "ml", "syndrome", "disease",
	}
	technicalTerms = []string{
		"algorithm", "implementation", "function", "class", "method",
		"api", "code", "parameter", "import", "def ",
	}
	legalTerms = []string{
		"hereby", "whereas", "agreement", "party", "clause",
		"section", "liability", "indemnify",
	}
)

// DetectDocumentType classifies a document from a content sample and
// its filename. Plain-text extensions short-circuit to the simple
// profile; otherwise deterministic keyword counting over the first
// 5000 bytes decides.
func DetectDocumentType(text, filename string) DocumentType {
	sample := text
	if len(sample) > 5000 {
		sample = sample[:5000]
	}
	sample = strings.ToLower(sample)
	filename = strings.ToLower(filename)

	for _, ext := range []string{".md", ".txt", ".rst"} {
		if strings.Contains(filename, ext) {
			return TypeSimple
		}
	}

	if countHits(sample, medicalTerms) >= 3 {
		return TypeMedical
	}
	if countHits(sample, technicalTerms) >= 3 {
		return TypeTechnical
	}
	if countHits(sample, legalTerms) >= 3 {
		return TypeLegal
	}

	return TypeGeneral
}

func countHits(sample string, terms []string) int {
	hits := 0
	for _, term := range terms {
		if strings.Contains(sample, term) {
			hits++
		}
	}
	return hits
}

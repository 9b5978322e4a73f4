package manifest

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"strings"
)

var docIDPattern = regexp.MustCompile(`^doc_[a-z0-9_]+$`)

// NewDocID derives the stable document ID for a filename:
// doc_{slug}_{hash}, where slug is the lowercased basename without
// extension (non-alphanumerics collapsed to underscore, capped at 30
// chars) and hash is the first 6 hex chars of the MD5 of the full
// filename. The same filename always yields the same ID.
func NewDocID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	slug := slugPattern.ReplaceAllString(strings.ToLower(base), "_")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	if slug == "" {
		slug = "document"
	}

	sum := md5.Sum([]byte(filename))
	return "doc_" + slug + "_" + hex.EncodeToString(sum[:])[:6]
}

// ValidDocID reports whether an ID has the doc_{slug}_{hash} shape.
// Used to reject path-traversal attempts before touching the store.
func ValidDocID(id string) bool {
	return docIDPattern.MatchString(id)
}

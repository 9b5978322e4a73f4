package lightrag

import "strings"

// parseEntityList turns a prose entity answer into a clean slice:
// one entity per line or comma, bullet prefixes and duplicates
// dropped, order of first appearance kept.
func parseEntityList(answer string) []string {
	entities := []string{}
	seen := map[string]bool{}

	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == '\n' || r == ','
	})
	for _, f := range fields {
		e := strings.TrimSpace(f)
		e = strings.TrimLeft(e, "-*0123456789. \t")
		e = strings.TrimSpace(e)
		if e == "" || len(e) > 100 {
			continue
		}
		key := strings.ToLower(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		entities = append(entities, e)
	}
	return entities
}

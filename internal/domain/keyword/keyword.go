// Package keyword defines the structured keyword set extracted from a
// free-text query. A Keywords value is immutable once produced by the
// extractor; every tag belongs to a fixed controlled vocabulary.
package keyword

// Keywords is the typed keyword set extracted from one query.
type Keywords struct {
	Materials    []string
	Machines     []string
	Processes    []string
	Tools        []string
	Drawings     []string
	Companies    []string
	Difficulties []string
	Categories   []string

	// ShowAll is set when the query asks for an unfiltered listing.
	ShowAll bool

	// OriginalQuery keeps the raw input for partial-word fallback matching.
	OriginalQuery string
}

// HasTechnicalTerms reports whether the query produced any material,
// machine, process, drawing, or category tag. Companies and tools do not
// count: a bare company mention is treated as a follow-up, not fresh
// technical content.
func (k Keywords) HasTechnicalTerms() bool {
	return len(k.Materials) > 0 ||
		len(k.Machines) > 0 ||
		len(k.Processes) > 0 ||
		len(k.Drawings) > 0 ||
		len(k.Categories) > 0
}

// SearchTerms returns the deduplicated union of every tag across all eight
// categories, preserving first-seen order.
func (k Keywords) SearchTerms() []string {
	groups := [][]string{
		k.Materials, k.Machines, k.Processes, k.Tools,
		k.Drawings, k.Companies, k.Difficulties, k.Categories,
	}
	seen := make(map[string]struct{})
	var terms []string
	for _, g := range groups {
		for _, t := range g {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			terms = append(terms, t)
		}
	}
	return terms
}

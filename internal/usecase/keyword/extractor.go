// Package keyword turns a free-text chat query into the typed keyword set
// the source searchers consume. Extraction is dictionary-based: a category
// tag is emitted only when one of its vocabulary aliases appears in the
// query, so tags are never invented from arbitrary text.
package keyword

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/tanakakogyo/shopkb/internal/domain/keyword"
)

// Extract parses a single query into its keyword set.
func Extract(query string) keyword.Keywords {
	folded := width.Fold.String(query)
	normalized := strings.ToLower(folded)

	k := keyword.Keywords{
		Materials:     matchVocab(normalized, materialVocab),
		Machines:      matchVocab(normalized, machineVocab),
		Processes:     matchVocab(normalized, processVocab),
		Tools:         matchPlain(normalized, toolVocab),
		Drawings:      matchDrawings(folded),
		Companies:     matchVocab(normalized, companyVocab),
		Difficulties:  matchVocab(normalized, difficultyVocab),
		Categories:    matchPlain(normalized, categoryVocab),
		OriginalQuery: query,
	}
	k.ShowAll = isShowAllRequest(normalized)
	return k
}

// ExtractWithHistory parses the query and, when it carries no technical
// content of its own, supplements it from the most recent conversation
// turn. Only drawing numbers and company tags carry over: stale materials,
// machines, or processes from history must not contaminate a fresh
// question.
func ExtractWithHistory(query string, history []string) keyword.Keywords {
	k := Extract(query)
	if k.HasTechnicalTerms() || len(history) == 0 {
		return k
	}

	prior := Extract(history[len(history)-1])
	k.Drawings = append(k.Drawings, prior.Drawings...)
	k.Companies = append(k.Companies, prior.Companies...)
	return k
}

// matchVocab emits each tag whose aliases include a substring of the query.
func matchVocab(normalized string, vocab []entry) []string {
	var tags []string
	for _, e := range vocab {
		for _, alias := range e.aliases {
			if strings.Contains(normalized, norm(alias)) {
				tags = append(tags, e.tag)
				break
			}
		}
	}
	return tags
}

// matchPlain handles vocabularies where the tag is its own surface form.
func matchPlain(normalized string, vocab []string) []string {
	var tags []string
	for _, tag := range vocab {
		if strings.Contains(normalized, norm(tag)) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// matchDrawings collects drawing-number-like tokens, upper-cased and
// deduplicated. It runs on the width-folded but case-preserved query so the
// shape patterns see half-width characters.
func matchDrawings(folded string) []string {
	seen := make(map[string]struct{})
	var drawings []string
	for _, pattern := range drawingPatterns {
		for _, m := range pattern.FindAllString(folded, -1) {
			token := strings.ToUpper(m)
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			drawings = append(drawings, token)
		}
	}
	return drawings
}

// isShowAllRequest detects listing intent, suppressed by counting intent.
func isShowAllRequest(normalized string) bool {
	if containsAny(normalized, countingPhrases) {
		return false
	}
	return containsAny(normalized, showAllPhrases)
}

func containsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, norm(p)) {
			return true
		}
	}
	return false
}

// norm folds width variants and lower-cases, so full-width aliases and
// full-width queries meet in one canonical form.
func norm(s string) string {
	return strings.ToLower(width.Fold.String(s))
}

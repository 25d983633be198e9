package search

import (
	"strings"
	"unicode/utf8"

	"github.com/tanakakogyo/shopkb/internal/domain/keyword"
	"github.com/tanakakogyo/shopkb/internal/domain/record"
)

// Additive weight table. A drawing-number hit dominates a title hit by
// design: an exact identifier is the strongest possible signal.
const (
	weightDrawingNumber = 10
	weightTitle         = 5
	weightMachineType   = 4
	weightMaterial      = 4 // documented weight; materials found in titles score weightTitle
	weightTool          = 3
	weightProcess       = 3
	weightDifficulty    = 2
	weightCategory      = 2
	weightCompany       = 2 // documented weight; company matches score in the product searcher
	weightPartial       = 1
)

// Boost multipliers: cross-dimension agreement is rewarded super-linearly.
const (
	boostThreeFields = 1.5
	boostTwoFields   = 1.2
)

// Matched-field labels, used both for boosting and for display.
const (
	fieldDrawingExact = "図番完全一致"
	fieldMaterial     = "材質"
	fieldProcess      = "加工方法"
	fieldCategory     = "カテゴリ"
	fieldMachineType  = "機械種別"
	fieldTool         = "使用工具"
	fieldDifficulty   = "難易度"
	fieldPartial      = "部分一致"
)

// relevance computes the weighted score of one drawing record against the
// extracted keywords, together with the matched-field labels that justify
// it. Pure function of its inputs.
func relevance(kw keyword.Keywords, d record.Drawing) (float64, []string) {
	var score float64
	var fields []string

	title := strings.ToLower(d.Title)

	if containsString(kw.Drawings, d.DrawingNumber) {
		score += weightDrawingNumber
		fields = append(fields, fieldDrawingExact)
	}

	// Material terms found in the title score as title matches.
	if n := countInTitle(kw.Materials, title); n > 0 {
		score += weightTitle * float64(n)
		fields = append(fields, fieldMaterial)
	}
	if n := countInTitle(kw.Processes, title); n > 0 {
		score += weightProcess * float64(n)
		fields = append(fields, fieldProcess)
	}
	if n := countInTitle(kw.Categories, title); n > 0 {
		score += weightCategory * float64(n)
		fields = append(fields, fieldCategory)
	}

	if n := countIntersecting(kw.Machines, d.MachineTypes); n > 0 {
		score += weightMachineType * float64(n)
		fields = append(fields, fieldMachineType)
	}
	if n := countIntersecting(kw.Tools, d.ToolsRequired); n > 0 {
		score += weightTool * float64(n)
		fields = append(fields, fieldTool)
	}

	if containsString(kw.Difficulties, d.Difficulty) {
		score += weightDifficulty
		fields = append(fields, fieldDifficulty)
	}

	// Word-overlap score always accumulates so an extra categorical match
	// can never lower the total; the label is a fallback, recorded only
	// when no categorical field fired.
	if n := partialOverlap(kw.OriginalQuery, title); n > 0 {
		score += weightPartial * float64(n)
		if len(fields) == 0 {
			fields = append(fields, fieldPartial)
		}
	}

	return boost(score, len(fields)), fields
}

// boost applies the multi-field multiplier to an additive score.
func boost(score float64, matchedFields int) float64 {
	switch {
	case matchedFields >= 3:
		return score * boostThreeFields
	case matchedFields == 2:
		return score * boostTwoFields
	default:
		return score
	}
}

// countInTitle counts keyword tags appearing as substrings of the
// lower-cased title.
func countInTitle(tags []string, title string) int {
	n := 0
	for _, t := range tags {
		if strings.Contains(title, strings.ToLower(t)) {
			n++
		}
	}
	return n
}

// countIntersecting counts keyword tags contained in any element of the
// record's list field, case-insensitively.
func countIntersecting(tags, values []string) int {
	n := 0
	for _, t := range tags {
		lower := strings.ToLower(t)
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), lower) {
				n++
				break
			}
		}
	}
	return n
}

// partialOverlap counts query tokens (longer than 2 runes) that appear as a
// substring of any whitespace-separated title token.
func partialOverlap(query, title string) int {
	queryWords := strings.Fields(strings.ToLower(query))
	titleWords := strings.Fields(title)

	n := 0
	for _, qw := range queryWords {
		if utf8.RuneCountInString(qw) <= 2 {
			continue
		}
		for _, tw := range titleWords {
			if strings.Contains(tw, qw) {
				n++
				break
			}
		}
	}
	return n
}

func containsString(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

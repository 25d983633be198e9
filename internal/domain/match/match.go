// Package match holds the per-query search result shapes. A Result is
// constructed fresh per query, never persisted, and immutable once
// returned to the caller.
package match

import "time"

// Product is a catalog hit.
type Product struct {
	CompanyName    string
	ProductName    string
	Category       string
	DrawingNumbers []string
	Score          float64
	MatchedFields  []string
}

// Drawing is a work-instruction hit.
type Drawing struct {
	DrawingNumber string
	Title         string
	CompanyID     string
	MachineTypes  []string
	Materials     []string
	Difficulty    string
	EstimatedTime string
	ToolsUsed     []string
	Score         float64
	MatchedFields []string
	WorkSteps     int
}

// Contribution is a community-annotation hit.
type Contribution struct {
	DrawingNumber string
	Contributor   string
	Content       string
	Type          string
	Timestamp     string
	Score         float64
}

// Statistics summarizes one search pass.
type Statistics struct {
	Products      int
	Drawings      int
	Contributions int
	SearchTerms   []string
	Elapsed       time.Duration
}

// Result is the aggregated outcome of one knowledge-base search.
type Result struct {
	Products      []Product
	Drawings      []Drawing
	Contributions []Contribution
	Stats         Statistics
}

// Empty reports whether no source produced a hit.
func (r Result) Empty() bool {
	return len(r.Products) == 0 && len(r.Drawings) == 0 && len(r.Contributions) == 0
}
